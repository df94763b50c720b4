// Package docs Swagger 文档，由 main.go 顶部注释生成后手工维护
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/session": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sesión"
                ],
                "summary": "Estado de la sesión",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/session/login": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sesión"
                ],
                "summary": "Iniciar sesión",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "401": {
                        "description": "Credenciales incorrectas",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "429": {
                        "description": "Demasiados intentos",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "credenciales",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.LoginRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/session/logout": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Sesión"
                ],
                "summary": "Cerrar sesión",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/view": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Consola"
                ],
                "summary": "Estado completo de la consola",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "401": {
                        "description": "Sin sesión",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/filter": {
            "put": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Consola"
                ],
                "summary": "Cambiar periodo",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "Periodo no válido",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "periodo",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/api.FilterRequest"
                        }
                    }
                ]
            }
        },
        "/api/v1/sections/{name}": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Consola"
                ],
                "summary": "Cambiar de sección",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "dashboard",
                            "gastos",
                            "ingresos",
                            "prestamos",
                            "objetivos",
                            "categorias",
                            "configuracion"
                        ],
                        "name": "name",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/dashboard/refresh": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Consola"
                ],
                "summary": "Recalcular el tablero",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/reload": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Consola"
                ],
                "summary": "Recargar datos iniciales",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/admin/{action}": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Configuración"
                ],
                "summary": "Inicializar o reiniciar la base",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "409": {
                        "description": "Acción en curso",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "iniciar",
                            "resetear"
                        ],
                        "name": "action",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "boolean",
                        "name": "confirm",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/gastos": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Gastos"
                ],
                "summary": "Listar gastos",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Gastos"
                ],
                "summary": "Guardar gasto",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "400": {
                        "description": "Validación",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "422": {
                        "description": "Fallo lógico",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "502": {
                        "description": "Error de conexión",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "campos",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.EntryFields"
                        }
                    }
                ]
            }
        },
        "/api/v1/gastos/cancelar": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Gastos"
                ],
                "summary": "Cancelar edición",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/gastos/{id}/editar": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Gastos"
                ],
                "summary": "Editar gasto",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "No cargado",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/gastos/{id}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Gastos"
                ],
                "summary": "Eliminar gasto",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "boolean",
                        "description": "confirmación",
                        "name": "confirm",
                        "in": "query",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/ingresos": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Ingresos"
                ],
                "summary": "Listar ingresos",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Ingresos"
                ],
                "summary": "Guardar ingreso",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "campos",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/models.EntryFields"
                        }
                    }
                ]
            }
        },
        "/api/v1/ingresos/cancelar": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Ingresos"
                ],
                "summary": "Cancelar edición",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        },
        "/api/v1/ingresos/{id}/editar": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Ingresos"
                ],
                "summary": "Editar ingreso",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/ingresos/{id}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Ingresos"
                ],
                "summary": "Eliminar ingreso",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "boolean",
                        "description": "confirmación",
                        "name": "confirm",
                        "in": "query",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/prestamos": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Préstamos"
                ],
                "summary": "Listar préstamos",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Préstamos"
                ],
                "summary": "Registrar préstamo",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "préstamo",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/forms.LoanFields"
                        }
                    }
                ]
            }
        },
        "/api/v1/prestamos/{id}/abono": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Préstamos"
                ],
                "summary": "Registrar abono",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    },
                    "404": {
                        "description": "No cargado",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/prestamos/{id}": {
            "delete": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Préstamos"
                ],
                "summary": "Eliminar préstamo",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "description": "ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "boolean",
                        "description": "confirmación",
                        "name": "confirm",
                        "in": "query",
                        "required": true
                    }
                ]
            }
        },
        "/api/v1/objetivo": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Objetivos"
                ],
                "summary": "Objetivo activo",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            },
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Objetivos"
                ],
                "summary": "Crear objetivo",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "objetivo",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/forms.GoalFields"
                        }
                    }
                ]
            }
        },
        "/api/v1/categorias": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categorías"
                ],
                "summary": "Agregar categoría",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "categoría",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/forms.CategoryFields"
                        }
                    }
                ]
            }
        },
        "/api/v1/fuentes": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "Categorías"
                ],
                "summary": "Agregar fuente",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "fuente",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/forms.SourceFields"
                        }
                    }
                ]
            }
        },
        "/api/v1/export/csv": {
            "get": {
                "produces": [
                    "text/csv"
                ],
                "tags": [
                    "Exportar"
                ],
                "summary": "Exportar CSV",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                },
                "parameters": [
                    {
                        "type": "string",
                        "enum": [
                            "gasto",
                            "ingreso"
                        ],
                        "name": "tipo",
                        "in": "query"
                    }
                ]
            }
        },
        "/api/v1/export/excel": {
            "get": {
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
                ],
                "tags": [
                    "Exportar"
                ],
                "summary": "Exportar Excel",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/api.Response"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "api.Response": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "data": {}
            }
        },
        "api.LoginRequest": {
            "type": "object",
            "properties": {
                "username": {
                    "type": "string"
                },
                "password": {
                    "type": "string"
                }
            },
            "required": [
                "username",
                "password"
            ]
        },
        "api.FilterRequest": {
            "type": "object",
            "properties": {
                "periodo": {
                    "type": "string"
                }
            },
            "required": [
                "periodo"
            ]
        },
        "models.EntryFields": {
            "type": "object",
            "properties": {
                "fecha": {
                    "type": "string"
                },
                "label": {
                    "type": "string"
                },
                "monto": {
                    "type": "string"
                },
                "descripcion": {
                    "type": "string"
                },
                "prestamoId": {
                    "type": "string"
                },
                "tipoAbono": {
                    "type": "string"
                }
            }
        },
        "forms.LoanFields": {
            "type": "object",
            "properties": {
                "tipo": {
                    "type": "string"
                },
                "contraparte": {
                    "type": "string"
                },
                "montoInicial": {
                    "type": "string"
                },
                "tasaInteres": {
                    "type": "string"
                },
                "plazo": {
                    "type": "string"
                },
                "fechaInicio": {
                    "type": "string"
                },
                "notas": {
                    "type": "string"
                }
            },
            "required": [
                "tipo",
                "contraparte",
                "montoInicial",
                "fechaInicio"
            ]
        },
        "forms.GoalFields": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "monto": {
                    "type": "string"
                },
                "plazo": {
                    "type": "string"
                },
                "fecha_inicio": {
                    "type": "string"
                }
            },
            "required": [
                "nombre",
                "monto",
                "plazo",
                "fecha_inicio"
            ]
        },
        "forms.CategoryFields": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                },
                "color": {
                    "type": "string"
                }
            },
            "required": [
                "nombre"
            ]
        },
        "forms.SourceFields": {
            "type": "object",
            "properties": {
                "nombre": {
                    "type": "string"
                }
            },
            "required": [
                "nombre"
            ]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Finanzas API",
	Description:      "Consola de finanzas personales sobre la hoja de cálculo remota",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"finanzas/app"
	"finanzas/charts"
	"finanzas/config"
	"finanzas/gateway"
	"finanzas/localstore"
	"finanzas/session"

	"golang.org/x/term"
)

const usage = `Uso: finanzas-cli [-c config.yaml] <comando> [opciones]

Comandos:
  login       iniciar sesión
  logout      cerrar sesión
  dashboard   resumen y gráficos (-periodo diario|semanal|mensual)
  gastos      listar gastos
  ingresos    listar ingresos
  prestamos   listar préstamos
  nuevo       registrar un gasto o ingreso (nuevo gasto|ingreso -monto ...)
  eliminar    eliminar un registro (eliminar gasto|ingreso|prestamo -id N -si)
  config      inicializar o reiniciar la base (config iniciar|resetear [-si])
  export      exportar a Excel o CSV (-o archivo)
`

// ErrNotLoggedIn 需要先登录
var ErrNotLoggedIn = errors.New("sesión no iniciada: ejecute 'finanzas-cli login'")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// env 一次命令执行所需的依赖
type env struct {
	cfg    *config.Config
	client *gateway.Client
	store  *localstore.Store
	board  *charts.TerminalBoard
	coord  *app.Coordinator
	guard  *session.Guard
	stdin  io.Reader
	stdout io.Writer
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("finanzas-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	var configFile string
	fs.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	fs.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("falta el comando")
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	e, err := newEnv(cfg, stdin, stdout)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return e.login(ctx, rest, stderr)
	case "logout":
		return e.logout(ctx)
	}

	if !e.guard.IsAuthenticated(ctx) {
		return ErrNotLoggedIn
	}
	switch cmd {
	case "dashboard":
		return e.dashboard(ctx, rest, stderr)
	case "gastos":
		return e.entries(ctx, app.SectionGastos)
	case "ingresos":
		return e.entries(ctx, app.SectionIngresos)
	case "prestamos":
		return e.loans(ctx)
	case "nuevo":
		return e.create(ctx, rest, stderr)
	case "eliminar":
		return e.remove(ctx, rest, stderr)
	case "config":
		return e.configAction(ctx, rest, stderr)
	case "export":
		return e.export(ctx, rest, stderr)
	default:
		fs.Usage()
		return fmt.Errorf("comando desconocido: %s", cmd)
	}
}

func newEnv(cfg *config.Config, stdin io.Reader, stdout io.Writer) (*env, error) {
	logger := config.GetLogger()
	store, err := localstore.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("abrir almacenamiento local: %w", err)
	}
	client := gateway.NewClient(cfg.Remote.URL,
		gateway.WithTimeout(cfg.Remote.Timeout),
		gateway.WithUserAgent(cfg.Remote.UserAgent),
		gateway.WithLogger(logger),
	)
	board := charts.NewTerminalBoard()
	coord := app.New(client, app.Options{
		LoanLinks: cfg.Features.LoanLinks,
		Logger:    logger,
		Charts:    board,
	})
	guard, err := session.NewGuard(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.FlagKey, store, coord.Status())
	if err != nil {
		store.Close()
		return nil, err
	}
	return &env{
		cfg: cfg, client: client, store: store, board: board,
		coord: coord, guard: guard, stdin: stdin, stdout: stdout,
	}, nil
}

func (e *env) close() {
	e.coord.Close()
	e.store.Close()
}

// login 交互式登录，密码可用 -password 传入
func (e *env) login(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(stderr)
	username := fs.String("u", "", "Usuario")
	passwordFlag := fs.String("password", "", "Contraseña (opcional, se solicita si se omite)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reader := bufio.NewReader(e.stdin)
	user := *username
	if user == "" {
		fmt.Fprint(e.stdout, "Usuario: ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("leer usuario: %w", err)
		}
		user = strings.TrimSpace(line)
	}
	password := *passwordFlag
	if password == "" {
		fmt.Fprint(e.stdout, "Contraseña: ")
		var err error
		password, err = readPassword(e.stdin, reader)
		if err != nil {
			return fmt.Errorf("leer contraseña: %w", err)
		}
		fmt.Fprintln(e.stdout)
	}

	ok, err := e.guard.Login(ctx, user, password)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New(session.TextBadCredentials)
	}
	fmt.Fprintln(e.stdout, successStyle.Render("Sesión iniciada."))
	return nil
}

func (e *env) logout(ctx context.Context) error {
	if err := e.guard.Logout(ctx); err != nil {
		return err
	}
	e.coord.Reset()
	fmt.Fprintln(e.stdout, "Sesión cerrada.")
	return nil
}

func readPassword(stdin io.Reader, buffered *bufio.Reader) (string, error) {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	// 非终端（测试、管道）
	line, err := buffered.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func today() string {
	return time.Now().Format("2006-01-02")
}

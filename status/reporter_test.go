package status

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietReporter() *Reporter {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewReporter(l)
}

func TestReport_OverwritesRegion(t *testing.T) {
	r := quietReporter()

	r.Report(RegionGasto, LevelInfo, "Registrando gasto...")
	r.Report(RegionGasto, LevelSuccess, "Gasto registrado")

	n := r.Get(RegionGasto)
	assert.Equal(t, LevelSuccess, n.Level)
	assert.Equal(t, "Gasto registrado", n.Message)
	assert.Equal(t, "fas fa-check-circle", n.Icon)
	assert.True(t, n.Visible)

	// 其他区域不受影响
	assert.False(t, r.Get(RegionIngreso).Visible)
	assert.Len(t, r.Snapshot(), 1)
}

func TestReport_Icons(t *testing.T) {
	assert.Equal(t, "check", LevelSuccess.Icon())
	assert.Equal(t, "times", LevelError.Icon())
	assert.Equal(t, "exclamation-triangle", LevelWarning.Icon())
	assert.Equal(t, "info", LevelInfo.Icon())
	assert.Equal(t, "info", Level("otro").Icon())
}

func TestReport_EmptyErrorMessage(t *testing.T) {
	r := quietReporter()
	r.Report(RegionConfig, LevelError, "")
	assert.Equal(t, "Error desconocido", r.Get(RegionConfig).Message)
}

func TestReport_UnknownRegionNeverPanics(t *testing.T) {
	r := quietReporter()
	assert.NotPanics(t, func() {
		r.Report(Region(99), LevelError, "x")
		r.Clear(Region(-1))
	})
	assert.Empty(t, r.Snapshot())
	assert.Equal(t, Notice{}, r.Get(Region(99)))
}

func TestRegionNames(t *testing.T) {
	for _, region := range Regions() {
		got, ok := ParseRegion(region.String())
		require.True(t, ok)
		assert.Equal(t, region, got)
	}
	_, ok := ParseRegion("statusNada")
	assert.False(t, ok)
}

func TestReporter_MarshalJSON(t *testing.T) {
	r := quietReporter()
	r.Report(RegionPrestamo, LevelWarning, "Sin préstamos")

	b, err := json.Marshal(r)
	require.NoError(t, err)
	var out map[string]map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, "warning", out["statusPrestamo"]["level"])
}

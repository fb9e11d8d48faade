package toaster

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestShow_Visible(t *testing.T) {
	m, cmd := New().Show("Saved", StyleSuccess, time.Millisecond)
	require.NotNil(t, cmd)
	require.True(t, m.Visible())
	require.Contains(t, ansi.Strip(m.View()), "Saved")
}

func TestDismiss(t *testing.T) {
	m, cmd := New().Show("Saved", StyleSuccess, time.Millisecond)
	m = m.Update(cmd())
	require.False(t, m.Visible())
	require.Empty(t, m.View())
}

func TestDismiss_StaleTimer(t *testing.T) {
	m, first := New().Show("one", StyleInfo, time.Millisecond)
	m, _ = m.Show("two", StyleError, time.Hour)

	m = m.Update(first())
	require.True(t, m.Visible(), "older timer must not hide newer toast")
	require.Equal(t, "two", m.Message())
}

func TestOverlay(t *testing.T) {
	bg := strings.Repeat(strings.Repeat(" ", 30)+"\n", 7) + strings.Repeat(" ", 30)
	m, _ := New().Show("Invalid number", StyleError, time.Second)

	out := ansi.Strip(m.Overlay(bg, 30, 8))
	require.Contains(t, out, "Invalid number")
	require.Equal(t, bg, New().Overlay(bg, 30, 8))
}

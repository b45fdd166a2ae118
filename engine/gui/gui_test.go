package gui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewport/common"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vecRef(v *[3]float32) *common.Vec3Ref {
	return &common.Vec3Ref{
		Load:  func() [3]float32 { return *v },
		Store: func(n [3]float32) { *v = n },
	}
}

func TestNumberControllerClampsAndRounds(t *testing.T) {
	pos := [3]float32{}
	panel := New("debug")
	var changes, finishes []float32
	c := panel.Add(vecRef(&pos), "y").
		SetMin(0).SetMax(5).SetStep(0.01).
		SetName("elevation").
		OnChange(func(v float32) { changes = append(changes, v) }).
		OnFinishChange(func(v float32) { finishes = append(finishes, v) })

	assert.Equal(t, "elevation", c.Name())
	assert.Equal(t, KindNumber, c.Kind())

	c.SetValue(2.346)
	assert.InDelta(t, 2.35, pos[1], 1e-5)

	c.SetValue(9)
	assert.Equal(t, float32(5), pos[1])
	c.SetValue(-3)
	assert.Equal(t, float32(0), pos[1])

	assert.Len(t, changes, 3)
	assert.Len(t, finishes, 3)

	min, max, step := c.Bounds()
	assert.Equal(t, float32(0), min)
	assert.Equal(t, float32(5), max)
	assert.Equal(t, float32(0.01), step)
}

func TestNumberControllerSlideThenRelease(t *testing.T) {
	pos := [3]float32{}
	panel := New("debug")
	changes, finishes := 0, 0
	c := panel.Add(vecRef(&pos), "x").
		OnChange(func(float32) { changes++ }).
		OnFinishChange(func(float32) { finishes++ })

	c.Slide(1)
	c.Slide(2)
	c.Slide(3)
	assert.Equal(t, 3, changes)
	assert.Equal(t, 0, finishes)

	c.Release()
	assert.Equal(t, 1, finishes)
	assert.Equal(t, float32(3), c.Number())
}

func TestUnboundedNumberController(t *testing.T) {
	pos := [3]float32{}
	c := New("debug").Add(vecRef(&pos), "z")
	min, max, step := c.Bounds()
	assert.True(t, math32.IsNaN(min))
	assert.True(t, math32.IsNaN(max))
	assert.True(t, math32.IsNaN(step))

	c.SetValue(123.456)
	assert.Equal(t, float32(123.456), pos[2])

	c.SetStep(-1)
	_, _, step = c.Bounds()
	assert.True(t, math32.IsNaN(step), "non-positive steps are ignored")
}

func TestBoolAndFuncControllers(t *testing.T) {
	visible := true
	panel := New("debug")
	var seen []bool
	b := panel.AddBool("visible", func() bool { return visible }, func(v bool) { visible = v }).
		OnChange(func(v bool) { seen = append(seen, v) })

	b.Toggle()
	assert.False(t, visible)
	b.SetValue(true)
	assert.True(t, b.Bool())
	assert.Equal(t, []bool{false, true}, seen)

	presses := 0
	f := panel.AddFunc("spin", func() { presses++ })
	f.Press()
	f.Press()
	assert.Equal(t, 2, presses)
	assert.Nil(t, f.Value())
	assert.Equal(t, KindFunc, f.Kind())
}

func TestColorController(t *testing.T) {
	panel := New("debug")
	c, err := panel.AddColor("color", "#ff0000")
	require.NoError(t, err)

	var got common.Color
	c.OnChange(func(col common.Color) { got = col })

	require.NoError(t, c.SetValue("#00ff00"))
	assert.Equal(t, common.ColorGreen, got)
	assert.Equal(t, "#00ff00", c.Value())

	assert.Error(t, c.SetValue("not a color"))
	assert.Equal(t, common.ColorGreen, c.Color(), "invalid values leave the color unchanged")

	_, err = panel.AddColor("bad", "#zz")
	assert.Error(t, err)
}

func TestFoldersAndFind(t *testing.T) {
	pos := [3]float32{}
	wire := false
	panel := New("debug")
	panel.Add(vecRef(&pos), "x")
	mat := panel.AddFolder("material")
	mat.AddBool("wireframe", func() bool { return wire }, func(v bool) { wire = v })

	assert.Same(t, mat, panel.AddFolder("material"), "folders are unique by name")
	require.Len(t, panel.Folders(), 1)
	assert.Equal(t, "material", panel.Folder("material").Name())
	assert.Nil(t, panel.Folder("missing"))

	c := panel.Find("material/wireframe")
	require.NotNil(t, c)
	c.(BoolController).Toggle()
	assert.True(t, wire)

	assert.NotNil(t, panel.Find("x"))
	assert.Nil(t, panel.Find("material/missing"))
	assert.Nil(t, panel.Find("missing/x"))

	panel.Close()
	assert.True(t, panel.Closed())
	panel.Open()
	assert.False(t, panel.Closed())
}

func TestPresetRoundTrip(t *testing.T) {
	pos := [3]float32{1, 2, 3}
	visible := true
	build := func() (GUI, ColorController) {
		panel := New("debug")
		panel.Add(vecRef(&pos), "x").SetMin(0).SetMax(5)
		panel.AddBool("visible", func() bool { return visible }, func(v bool) { visible = v })
		panel.AddFunc("spin", func() {})
		mat := panel.AddFolder("material")
		col, err := mat.AddColor("color", "#ff0000")
		require.NoError(t, err)
		return panel, col
	}

	panel, _ := build()
	var buf bytes.Buffer
	require.NoError(t, panel.SavePreset(&buf))
	assert.Contains(t, buf.String(), "[material]")
	assert.NotContains(t, buf.String(), "spin")

	pos[0] = 4
	visible = false
	other, col := build()
	require.NoError(t, col.SetValue("#0000ff"))
	require.NoError(t, other.LoadPreset(&buf))

	assert.Equal(t, float32(1), pos[0])
	assert.True(t, visible)
	assert.Equal(t, common.ColorRed, col.Color())
}

func TestLoadPresetClampsAndRejectsWrongTypes(t *testing.T) {
	pos := [3]float32{}
	panel := New("debug")
	panel.Add(vecRef(&pos), "x").SetMax(5)

	require.NoError(t, panel.LoadPreset(strings.NewReader("x = 12\nunknown = 1\n")))
	assert.Equal(t, float32(5), pos[0])

	assert.Error(t, panel.LoadPreset(strings.NewReader("x = \"far\"\n")))
	assert.Error(t, panel.LoadPreset(strings.NewReader("x = = 1\n")))
}

func TestDescribe(t *testing.T) {
	pos := [3]float32{}
	panel := New("debug")
	panel.Add(vecRef(&pos), "x")
	panel.AddFolder("material").AddFunc("reset", func() {})

	lines := panel.Describe()
	assert.Equal(t, []string{"x [number] = 0", "material/", "  reset [func]"}, lines)
}

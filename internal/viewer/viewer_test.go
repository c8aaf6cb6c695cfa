package viewer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"latent-stars/internal/blend"
	"latent-stars/internal/catalog"
	"latent-stars/internal/logger"
	"latent-stars/internal/viewerconfig"
)

const sampleTable = `id,latent_x,latent_y,latent_z,x,y,z,absmag,spect
1,1,0,0,10,0,0,4.83,G2
2,0,1,0,0,10,0,9.83,M5
`

type fakeDisplay struct {
	ready   bool
	resized bool
}

func (d *fakeDisplay) Ready() bool          { return d.ready }
func (d *fakeDisplay) Size() (int32, int32) { return 800, 600 }
func (d *fakeDisplay) Resized() bool        { return d.resized }

type fakeRenderer struct {
	updates  int
	resizes  int
	releases int
}

func (r *fakeRenderer) Update(dt float32) { r.updates++ }
func (r *fakeRenderer) Draw()             {}
func (r *fakeRenderer) Resize(w, h int32) { r.resizes++ }
func (r *fakeRenderer) Release()          { r.releases++ }

type fixture struct {
	viewer   *Viewer
	display  *fakeDisplay
	renderer *fakeRenderer
	builds   int
}

func newFixture(t *testing.T, sources []string) *fixture {
	t.Helper()
	f := &fixture{
		display:  &fakeDisplay{ready: true},
		renderer: &fakeRenderer{},
	}
	prefs := viewerconfig.Default()
	prefs.DatasetSources = sources
	build := func(stars []catalog.Star, b *blend.Controller, p viewerconfig.Prefs, w, h int32) (Renderer, error) {
		f.builds++
		return f.renderer, nil
	}
	f.viewer = New(prefs, f.display, build, logger.Noop())
	return f
}

func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stars.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleTable), 0644))
	return path
}

func pumpUntil(t *testing.T, v *Viewer, want State) {
	t.Helper()
	require.Eventually(t, func() bool {
		v.Update(0.016)
		return v.State() == want
	}, 5*time.Second, time.Millisecond, "state never reached %v", want)
}

func TestLifecycleHappyPath(t *testing.T) {
	f := newFixture(t, []string{writeDataset(t)})
	require.Equal(t, Uninitialized, f.viewer.State())

	f.viewer.Activate(context.Background())
	require.Equal(t, DataLoading, f.viewer.State())

	pumpUntil(t, f.viewer, Ready)
	assert.Equal(t, 1, f.builds)

	f.viewer.Update(0.016)
	assert.Equal(t, 1, f.renderer.updates)

	f.viewer.Teardown()
	assert.Equal(t, TornDown, f.viewer.State())
	assert.Equal(t, 1, f.renderer.releases)
}

func TestSetupIsIdempotent(t *testing.T) {
	f := newFixture(t, []string{writeDataset(t)})

	f.viewer.Activate(context.Background())
	f.viewer.Activate(context.Background())
	pumpUntil(t, f.viewer, Ready)

	// Keep pumping: the renderer must be constructed exactly once.
	for i := 0; i < 10; i++ {
		f.viewer.Update(0.016)
	}
	assert.Equal(t, 1, f.builds)

	f.viewer.Activate(context.Background())
	assert.Equal(t, Ready, f.viewer.State())
	assert.Equal(t, 1, f.builds)
}

func TestMountWaitsForDisplay(t *testing.T) {
	f := newFixture(t, []string{writeDataset(t)})
	f.display.ready = false

	f.viewer.Activate(context.Background())
	pumpUntil(t, f.viewer, AwaitingMount)

	for i := 0; i < 10; i++ {
		f.viewer.Update(0.016)
	}
	assert.Equal(t, AwaitingMount, f.viewer.State())
	assert.Zero(t, f.builds)

	f.display.ready = true
	f.viewer.Update(0.016)
	assert.Equal(t, Ready, f.viewer.State())
	assert.Equal(t, 1, f.builds)
}

func TestLoadFailureIsTerminalByOmission(t *testing.T) {
	f := newFixture(t, []string{filepath.Join(t.TempDir(), "missing.csv")})

	f.viewer.Activate(context.Background())
	pumpUntil(t, f.viewer, AwaitingMount)

	// Data never arrived; the viewer parks in AwaitingMount forever.
	for i := 0; i < 20; i++ {
		f.viewer.Update(0.016)
	}
	assert.Equal(t, AwaitingMount, f.viewer.State())
	assert.Zero(t, f.builds)
}

func TestResizeForwardedWhenReady(t *testing.T) {
	f := newFixture(t, []string{writeDataset(t)})
	f.viewer.Activate(context.Background())
	pumpUntil(t, f.viewer, Ready)

	f.display.resized = true
	f.viewer.Update(0.016)
	f.display.resized = false
	f.viewer.Update(0.016)
	assert.Equal(t, 1, f.renderer.resizes)
}

func TestTeardownWithoutSetup(t *testing.T) {
	f := newFixture(t, nil)

	f.viewer.Teardown()
	assert.Equal(t, TornDown, f.viewer.State())

	// Repeated teardown and late activation stay no-ops.
	f.viewer.Teardown()
	f.viewer.Activate(context.Background())
	assert.Equal(t, TornDown, f.viewer.State())
	f.viewer.Update(0.016)
	assert.Zero(t, f.builds)
}

func TestTeardownReleasesOnce(t *testing.T) {
	f := newFixture(t, []string{writeDataset(t)})
	f.viewer.Activate(context.Background())
	pumpUntil(t, f.viewer, Ready)

	f.viewer.Teardown()
	f.viewer.Teardown()
	assert.Equal(t, 1, f.renderer.releases)

	// A torn-down viewer stops driving frames.
	f.viewer.Update(0.016)
	assert.Equal(t, 0, f.renderer.updates)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Uninitialized", Uninitialized.String())
	assert.Equal(t, "Ready", Ready.String())
	assert.Equal(t, "TornDown", TornDown.String())
	assert.Equal(t, "Unknown", State(42).String())
}

package internal

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vadiminshakov/memewatch/config"
	"github.com/vadiminshakov/memewatch/internal/domain"
	"go.uber.org/zap"
)

type stubSource struct {
	rows        []domain.MarketRow
	invalidated int
}

func (s *stubSource) Rows(_ context.Context) ([]domain.MarketRow, error) {
	return s.rows, nil
}

func (s *stubSource) Invalidate(_ context.Context) error {
	s.invalidated++
	return nil
}

type recordingNotifier struct {
	notified []string
	failFor  map[string]error
}

func (n *recordingNotifier) Enabled() bool { return true }

func (n *recordingNotifier) Notify(_ context.Context, row domain.MarketRow) error {
	n.notified = append(n.notified, row.Symbol)
	if err, ok := n.failFor[row.Symbol]; ok {
		return err
	}

	return nil
}

func testRows() []domain.MarketRow {
	return []domain.MarketRow{
		{Symbol: "CALM", Signal: domain.ScoreResult{Status: domain.StatusNeutral}},
		{Symbol: "DIP", Signal: domain.ScoreResult{Status: domain.StatusStrongBuy}},
		{Symbol: "HOT", Signal: domain.ScoreResult{Status: domain.StatusDangerZone}},
	}
}

func newTestWatcher(source *stubSource, n *recordingNotifier) *Watcher {
	conf := config.Config{
		WatchList: []string{"CALM", "DIP", "HOT"},
		Chain:     domain.ChainAll,
	}

	return NewWatcher(source, n, conf, zap.NewNop())
}

func TestRefreshDispatchesPriorityAlertsInOrder(t *testing.T) {
	source := &stubSource{rows: testRows()}
	n := &recordingNotifier{}
	w := newTestWatcher(source, n)

	require.NoError(t, w.Refresh(context.Background()))

	assert.Equal(t, 1, source.invalidated)
	assert.Equal(t, []string{"DIP", "HOT"}, n.notified)
}

func TestRefreshRepeatsAlertsEveryCycle(t *testing.T) {
	source := &stubSource{rows: testRows()}
	n := &recordingNotifier{}
	w := newTestWatcher(source, n)

	// a persisting condition re-triggers delivery on every pass
	require.NoError(t, w.Refresh(context.Background()))
	require.NoError(t, w.Refresh(context.Background()))

	assert.Equal(t, []string{"DIP", "HOT", "DIP", "HOT"}, n.notified)
}

func TestDeliveryFailureDoesNotBlockLaterAlerts(t *testing.T) {
	source := &stubSource{rows: testRows()}
	n := &recordingNotifier{failFor: map[string]error{
		"DIP": errors.New("telegram unreachable"),
	}}
	w := newTestWatcher(source, n)

	require.NoError(t, w.Refresh(context.Background()))

	assert.Equal(t, []string{"DIP", "HOT"}, n.notified, "HOT must still be attempted after DIP fails")
}

func TestSnapshotReflectsLatestPass(t *testing.T) {
	source := &stubSource{rows: testRows()}
	n := &recordingNotifier{}
	w := newTestWatcher(source, n)

	assert.Empty(t, w.Snapshot())

	require.NoError(t, w.Refresh(context.Background()))
	assert.Len(t, w.Snapshot(), 3)

	source.rows = testRows()[:1]
	require.NoError(t, w.Refresh(context.Background()))
	assert.Len(t, w.Snapshot(), 1, "snapshot is replaced wholesale")
}

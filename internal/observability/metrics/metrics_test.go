package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSettlement(t *testing.T) {
	before := testutil.ToFloat64(settlementCounter.WithLabelValues(Success.String()))
	RecordSettlement("")
	assert.InDelta(t, before+1, testutil.ToFloat64(settlementCounter.WithLabelValues(Success.String())), 0)

	before = testutil.ToFloat64(settlementCounter.WithLabelValues("ZERO_AMOUNT"))
	RecordSettlement("ZERO_AMOUNT")
	assert.InDelta(t, before+1, testutil.ToFloat64(settlementCounter.WithLabelValues("ZERO_AMOUNT")), 0)
}

func TestRecordSettledAmounts(t *testing.T) {
	volume := testutil.ToFloat64(settledVolumeCounter)
	fees := testutil.ToFloat64(feesCollectedCounter)
	recipient := testutil.ToFloat64(rewardsPaidCounter.WithLabelValues("recipient"))

	RecordSettledAmounts(10_000, 100, 499_995, 499_996)

	assert.InDelta(t, volume+10_000, testutil.ToFloat64(settledVolumeCounter), 0)
	assert.InDelta(t, fees+100, testutil.ToFloat64(feesCollectedCounter), 0)
	assert.InDelta(t, recipient+499_996, testutil.ToFloat64(rewardsPaidCounter.WithLabelValues("recipient")), 0)
}

func TestRecordLedger(t *testing.T) {
	RecordLedger(42, 999_999)
	assert.InDelta(t, 42, testutil.ToFloat64(amountMovedGauge), 0)
	assert.InDelta(t, 999_999, testutil.ToFloat64(rewardRateGauge), 0)
}

func TestInstrumentPoller(t *testing.T) {
	ok := InstrumentPoller("test_ok", func(context.Context) error { return nil })
	require.NoError(t, ok(t.Context()))

	boom := errors.New("boom")
	failing := InstrumentPoller("test_failing", func(context.Context) error { return boom })
	assert.ErrorIs(t, failing(t.Context()), boom)

	// one series per poller and outcome
	assert.GreaterOrEqual(t, testutil.CollectAndCount(pollerDurationHistogram), 2)
}

package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MrPredictor/internal/model"
)

func flatBars(n int, open, high, low, close float64) []model.Bar {
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := range bars {
		bars[i] = model.Bar{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  open,
			High:  high,
			Low:   low,
			Close: close,
		}
	}
	return bars
}

func TestPredict_ConstantMomentumExample(t *testing.T) {
	history := flatBars(15, 100, 103, 99, 102)

	f, ok := Predict(history, model.PriceQuote(102))
	require.True(t, ok)
	assert.True(t, f.IsPrediction)
	assert.InDelta(t, 102.0, f.Open, 1e-9)
	assert.InDelta(t, 105.0, f.Close, 1e-9)
	assert.InDelta(t, 105.8, f.High, 1e-9)
	assert.InDelta(t, 101.2, f.Low, 1e-9)
}

func TestPredict_NoMovementWhenFlat(t *testing.T) {
	history := flatBars(15, 50, 50, 50, 50)

	f, ok := Predict(history, model.PriceQuote(51.25))
	require.True(t, ok)
	assert.Equal(t, 51.25, f.Open)
	assert.Equal(t, 51.25, f.Close)
	assert.Equal(t, 51.25, f.High)
	assert.Equal(t, 51.25, f.Low)
}

func TestPredict_InsufficientHistory(t *testing.T) {
	for _, n := range []int{0, 1, 14} {
		_, ok := Predict(flatBars(n, 100, 103, 99, 102), model.PriceQuote(100))
		assert.False(t, ok, "history of %d bars", n)
	}
}

func TestPredict_UnavailablePrice(t *testing.T) {
	_, ok := Predict(flatBars(40, 100, 103, 99, 102), model.Unavailable)
	assert.False(t, ok)

	// a zero price that was actually fetched still forecasts
	_, ok = Predict(flatBars(40, 100, 103, 99, 102), model.PriceQuote(0))
	assert.True(t, ok)
}

func TestPredict_UsesOnlyLastWindow(t *testing.T) {
	old := flatBars(30, 10, 500, 0, 400)
	recent := flatBars(15, 100, 103, 99, 102)
	history := append(old, recent...)

	f, ok := Predict(history, model.PriceQuote(102))
	require.True(t, ok)
	assert.InDelta(t, 105.0, f.Close, 1e-9)
}

func TestPredict_ClampsMove(t *testing.T) {
	tests := []struct {
		name      string
		open      float64
		close     float64
		direction float64
	}{
		{"up", 100, 110, 1},
		{"down", 110, 100, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// change ±10, range 12 -> move 15 exceeds cap 10.8
			history := flatBars(15, tt.open, 112, 100, tt.close)
			f, ok := Predict(history, model.PriceQuote(200))
			require.True(t, ok)

			volatility := 12.0
			assert.InDelta(t, volatility*MoveCapRatio, math.Abs(f.Close-f.Open), 1e-9)
			assert.Equal(t, tt.direction, math.Copysign(1, f.Close-f.Open))
			assert.InDelta(t, math.Max(f.Open, f.Close)+volatility*WickRatio, f.High, 1e-9)
			assert.InDelta(t, math.Min(f.Open, f.Close)-volatility*WickRatio, f.Low, 1e-9)
		})
	}
}

func TestPredict_WeightsFollowChronologicalOrder(t *testing.T) {
	history := flatBars(15, 0, 100, -100, 0)
	for i := range history {
		history[i].Close = float64(i + 1) // change grows toward the newest bar
	}
	reversed := flatBars(15, 0, 100, -100, 0)
	for i := range reversed {
		reversed[i].Close = float64(15 - i)
	}

	f1, ok := Predict(history, model.PriceQuote(1000))
	require.True(t, ok)
	f2, ok := Predict(reversed, model.PriceQuote(1000))
	require.True(t, ok)

	// recent bars weigh more, so the rising series forecasts the bigger move
	assert.Greater(t, f1.Close, f2.Close)
}

func TestPredict_ForecastTimeStepsPastLastBar(t *testing.T) {
	history := flatBars(15, 100, 103, 99, 102)
	f, ok := Predict(history, model.PriceQuote(102))
	require.True(t, ok)
	assert.Equal(t, history[14].Time.Add(time.Hour), f.Time)

	history[14].Time = time.Time{}
	f, ok = Predict(history, model.PriceQuote(102))
	require.True(t, ok)
	assert.True(t, f.Time.IsZero())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		price     float64
		target    float64
		signal    model.SignalType
		direction string
	}{
		{100, 101, model.SignalBuy, "up"},
		{100, 99, model.SignalSell, "down"},
		{100, 100.01, model.SignalNeutral, "up"},
		{100, 99.99, model.SignalNeutral, "down"},
		{100, 100, model.SignalNeutral, "up"},
	}
	for _, tt := range tests {
		kpi := Classify(tt.price, model.Forecast{Bar: model.Bar{Close: tt.target}, IsPrediction: true})
		assert.Equal(t, tt.signal, kpi.Signal, "target %.2f", tt.target)
		assert.Equal(t, tt.direction, kpi.Direction, "target %.2f", tt.target)
		assert.InDelta(t, math.Abs(tt.target-tt.price), kpi.Movement, 1e-9)
		assert.Equal(t, tt.target, kpi.Target)
	}
}

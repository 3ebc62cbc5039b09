package transitionmw_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transitkit/pkg/logger"
	"github.com/dmitrymomot/transitkit/pkg/transitionmw"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	t.Run("completed transition", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter(), logger.WithLevel(slog.LevelDebug))
		m := newOrderMachine(t, nil, transitionmw.Logging[string, string, *order](log))

		require.NoError(t, m.Fire(context.Background(), m.ByTrigger(&order{status: "new"}, "pay")))

		out := buf.String()
		assert.Contains(t, out, `"msg":"transition started"`)
		assert.Contains(t, out, `"msg":"transition completed"`)
		assert.Contains(t, out, `"source":"new"`)
		assert.Contains(t, out, `"destination":"paid"`)
		assert.Contains(t, out, `"trigger":"pay"`)
		assert.Contains(t, out, `"component":"transitionmw"`)
	})

	t.Run("failed transition", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithJSONFormatter())
		m := newOrderMachine(t, actionFunc(func(context.Context, *transition) error {
			return errDeclined
		}), transitionmw.Logging[string, string, *order](log))

		require.Error(t, m.Fire(context.Background(), m.ByTrigger(&order{status: "new"}, "pay")))

		out := buf.String()
		assert.NotContains(t, out, "transition started")
		assert.Contains(t, out, `"msg":"transition failed"`)
		assert.Contains(t, out, "card declined")
	})

	t.Run("nil logger", func(t *testing.T) {
		t.Parallel()
		m := newOrderMachine(t, nil, transitionmw.Logging[string, string, *order](nil))
		require.NoError(t, m.Fire(context.Background(), m.ByTrigger(&order{status: "new"}, "pay")))
	})
}

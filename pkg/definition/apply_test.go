package definition_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/transitkit/pkg/definition"
	"github.com/dmitrymomot/transitkit/pkg/statemachine"
)

type article struct {
	status string
	body   string
}

type calls struct {
	mu    sync.Mutex
	names []string
}

func (c *calls) action(name string) statemachine.ActionFunc[string, string, *article] {
	return func(context.Context, *statemachine.Transition[string, string, *article]) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.names = append(c.names, name)
		return nil
	}
}

func newArticleMachine(t *testing.T) *statemachine.Machine[string, string, *article] {
	t.Helper()
	return statemachine.MustNew[string, string](
		func(a *article) string { return a.status },
		func(a *article, s string) { a.status = s },
	)
}

func newRegistry(c *calls) *definition.Registry[*article] {
	return definition.NewRegistry[*article]().
		Guard("has_content", func(a *article) bool { return a.body != "" }).
		ActionFunc("audit", c.action("audit")).
		ActionFunc("lock", c.action("lock")).
		ActionFunc("notify_author", c.action("notify_author")).
		ActionFunc("index", c.action("index"))
}

func TestApply(t *testing.T) {
	t.Parallel()

	def, err := definition.Load(context.Background(), "testdata/article.yaml")
	require.NoError(t, err)

	var c calls
	m := newArticleMachine(t)
	require.NoError(t, definition.Apply(def, m, newRegistry(&c)))

	assert.Equal(t, []string{"published", "draft", "review", "approved"}, m.States())
	assert.True(t, m.IsFinite("published"))

	ctx := context.Background()

	empty := &article{status: "draft"}
	require.NoError(t, m.Fire(ctx, m.ByTrigger(empty, "submit")))
	assert.Equal(t, "draft", empty.status, "guard rejects an empty article")

	a := &article{status: "draft", body: "hello"}
	require.NoError(t, m.Fire(ctx, m.ByTrigger(a, "submit")))
	assert.Equal(t, "review", a.status)

	require.NoError(t, m.Fire(ctx, m.ByState(a, "approved")))
	assert.Equal(t, "published", a.status, "approved autofires into published")

	assert.Equal(t, []string{
		"audit", "lock",
		"audit", "notify_author",
		"audit", "index",
	}, c.names)
}

func TestApply_Graph(t *testing.T) {
	t.Parallel()

	def, err := definition.Load(context.Background(), "testdata/article.yaml")
	require.NoError(t, err)

	var c calls
	m := newArticleMachine(t)
	require.NoError(t, definition.Apply(def, m, newRegistry(&c)))

	assert.Equal(t, "```mermaid\ngraph TD;\n"+
		"draft-->review;\n"+
		"review-->draft;\n"+
		"review-->approved;\n"+
		"approved-->published;\n"+
		"```\n", m.Graph())
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	def, err := definition.Load(context.Background(), "testdata/article.yaml")
	require.NoError(t, err)

	t.Run("unknown guard leaves the machine untouched", func(t *testing.T) {
		t.Parallel()
		var c calls
		reg := definition.NewRegistry[*article]().
			ActionFunc("audit", c.action("audit")).
			ActionFunc("lock", c.action("lock")).
			ActionFunc("notify_author", c.action("notify_author")).
			ActionFunc("index", c.action("index"))

		m := newArticleMachine(t)
		err := definition.Apply(def, m, reg)
		assert.ErrorIs(t, err, definition.ErrUnknownGuard)
		assert.Empty(t, m.States())
	})

	t.Run("unknown action", func(t *testing.T) {
		t.Parallel()
		reg := definition.NewRegistry[*article]().
			Guard("has_content", func(*article) bool { return true })

		err := definition.Apply(def, newArticleMachine(t), reg)
		assert.ErrorIs(t, err, definition.ErrUnknownAction)
	})

	t.Run("nil machine", func(t *testing.T) {
		t.Parallel()
		err := definition.Apply[*article](def, nil, nil)
		assert.ErrorIs(t, err, definition.ErrNilMachine)
	})

	t.Run("state already configured", func(t *testing.T) {
		t.Parallel()
		var c calls
		m := newArticleMachine(t)
		require.NoError(t, m.SetFinite("draft"))

		err := definition.Apply(def, m, newRegistry(&c))
		assert.ErrorIs(t, err, definition.ErrFailedToApply)
		assert.True(t, statemachine.IsAmbiguousStateConfigurationError(err))
	})
}

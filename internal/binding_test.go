package internal_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow/internal"
)

// recordNavigator records navigation side effects in invocation order.
type recordNavigator struct {
	calls []string
}

func (n *recordNavigator) NavigateTo(_ context.Context, path string) error {
	n.calls = append(n.calls, "navigate:"+path)
	return nil
}

func (n *recordNavigator) Refresh(context.Context) error {
	n.calls = append(n.calls, "refresh")
	return nil
}

// pendingNavigator reports each navigation stage.
type pendingNavigator struct {
	report func(stage string)
}

func (n *pendingNavigator) NavigateTo(_ context.Context, path string) error {
	n.report("navigate")
	return nil
}

func (n *pendingNavigator) Refresh(context.Context) error {
	n.report("refresh")
	return nil
}

func succeedHandler(message string, opts ...internal.SignalOption) internal.HandlerFunc {
	return internal.Wrap("test", func(ctx context.Context, state internal.Result, form url.Values) (internal.Result, error) {
		return internal.Result{}, internal.Succeed(message, opts...)
	})
}

func failHandler(message string, opts ...internal.SignalOption) internal.HandlerFunc {
	return internal.Wrap("test", func(ctx context.Context, state internal.Result, form url.Values) (internal.Result, error) {
		return internal.Result{}, internal.Fail(message, opts...)
	})
}

func TestNewBinding(t *testing.T) {
	t.Parallel()

	t.Run("seeds a default record with absent payload", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"))
		state := b.State()
		assert.False(t, state.Success)
		assert.Empty(t, state.Message)
		assert.Nil(t, state.Payload)
		assert.False(t, b.Pending())
	})

	t.Run("initial payload is configurable as an empty map", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"),
			internal.WithInitialPayload(url.Values{}),
		)
		assert.NotNil(t, b.State().Payload)
		assert.Empty(t, b.State().Payload)
	})

	t.Run("initial state is configurable", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"),
			internal.WithInitialState(internal.Result{Message: "seed"}),
		)
		assert.Equal(t, "seed", b.State().Message)
	})
}

func TestBindingDispatch(t *testing.T) {
	t.Parallel()

	t.Run("publishes the handler outcome with the submitted payload", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok", internal.WithRedirect("/x")))

		form := url.Values{"username": {"ab"}}
		res, err := b.Dispatch(context.Background(), form)
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Equal(t, "ok", res.Message)
		assert.Equal(t, "/x", res.Redirect)
		assert.Equal(t, form, res.Payload)
		assert.Equal(t, res, b.State())
	})

	t.Run("pending is true only while the handler runs", func(t *testing.T) {
		t.Parallel()

		var b *internal.Binding
		var seen bool
		b = internal.NewBinding(func(ctx context.Context, state internal.Result, form url.Values) (internal.Result, error) {
			seen = b.Pending()
			return internal.Result{Success: true}, nil
		})

		require.False(t, b.Pending())
		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, seen)
		assert.False(t, b.Pending())
	})

	t.Run("pending is false once the new state is published", func(t *testing.T) {
		t.Parallel()

		var b *internal.Binding
		pending := map[string]bool{}
		nav := &pendingNavigator{report: func(stage string) { pending[stage] = b.Pending() }}

		b = internal.NewBinding(succeedHandler("ok", internal.WithRefresh()),
			internal.WithNavigator(nav),
		)
		b.OnSuccess(func(ctx context.Context, res internal.Result) error {
			pending["callback"] = b.Pending()
			return nil
		})
		b.Subscribe(func(internal.Result) { pending["subscriber"] = b.Pending() })

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, map[string]bool{
			"callback":   false,
			"subscriber": false,
			"refresh":    false,
		}, pending)
	})

	t.Run("handler receives the previously published state", func(t *testing.T) {
		t.Parallel()

		var prev internal.Result
		b := internal.NewBinding(func(ctx context.Context, state internal.Result, form url.Values) (internal.Result, error) {
			prev = state
			return internal.Result{Success: true, Message: "second"}, nil
		}, internal.WithInitialState(internal.Result{Message: "seed"}))

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "seed", prev.Message)

		_, err = b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, "second", prev.Message)
	})

	t.Run("host control signals escape without publishing", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(internal.Wrap("test", func(ctx context.Context, state internal.Result, form url.Values) (internal.Result, error) {
			return internal.Result{}, context.Canceled
		}))

		_, err := b.Dispatch(context.Background(), url.Values{"a": {"1"}})
		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, b.State().Payload)
		assert.False(t, b.Pending())
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"))
		require.NoError(t, b.Close())

		_, err := b.Dispatch(context.Background(), nil)
		require.ErrorIs(t, err, internal.ErrBindingClosed)
	})

	t.Run("fails without a handler", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(nil)
		_, err := b.Dispatch(context.Background(), nil)
		require.ErrorIs(t, err, internal.ErrNoHandler)
	})
}

func TestBindingCallbacks(t *testing.T) {
	t.Parallel()

	t.Run("success callback fires once and is consumed", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"))

		var fired int
		b.OnSuccess(func(ctx context.Context, res internal.Result) error {
			fired++
			assert.True(t, res.Success)
			return nil
		})

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		require.Equal(t, 1, fired)

		// Consumed: a second transition must not fire it again.
		_, err = b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, fired)
	})

	t.Run("error callback fires only for failures with a message", func(t *testing.T) {
		t.Parallel()

		var fired int
		cb := func(ctx context.Context, res internal.Result) error {
			fired++
			return nil
		}

		// Failure without message: callback stays registered.
		b := internal.NewBinding(internal.Wrap("test", func(ctx context.Context, state internal.Result, form url.Values) (internal.Result, error) {
			return internal.Result{Success: false}, nil
		}))
		b.OnError(cb)
		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, fired)

		// Failure with message: callback consumed.
		b2 := internal.NewBinding(failHandler("nope"))
		b2.OnError(cb)
		_, err = b2.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, fired)
	})

	t.Run("success callback does not fire for failures", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(failHandler("nope"))

		var fired bool
		b.OnSuccess(func(ctx context.Context, res internal.Result) error {
			fired = true
			return nil
		})

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, fired)
	})

	t.Run("last registration wins", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"))

		var first, second bool
		b.OnSuccess(func(ctx context.Context, res internal.Result) error {
			first = true
			return nil
		})
		b.OnSuccess(func(ctx context.Context, res internal.Result) error {
			second = true
			return nil
		})

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.False(t, first)
		assert.True(t, second)
	})

	t.Run("submit callback runs before the handler and is consumed", func(t *testing.T) {
		t.Parallel()

		var order []string
		b := internal.NewBinding(internal.Wrap("test", func(ctx context.Context, state internal.Result, form url.Values) (internal.Result, error) {
			order = append(order, "handler")
			return internal.Result{Success: true}, nil
		}))

		b.OnSubmit(func(ctx context.Context, form url.Values) error {
			order = append(order, "submit:"+form.Get("username"))
			return nil
		})

		_, err := b.Dispatch(context.Background(), url.Values{"username": {"ab"}})
		require.NoError(t, err)

		_, err = b.Dispatch(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"submit:ab", "handler", "handler"}, order)
	})

	t.Run("callbacks may re-register for the next submission", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"))

		var fired int
		b.OnSuccess(func(ctx context.Context, res internal.Result) error {
			fired++
			b.OnSuccess(func(ctx context.Context, res internal.Result) error {
				fired++
				return nil
			})
			return nil
		})

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		require.Equal(t, 1, fired)

		_, err = b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, fired)
	})
}

func TestBindingSubscribe(t *testing.T) {
	t.Parallel()

	t.Run("observers see every transition but not the initial seed", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"))

		var seen []string
		cancel := b.Subscribe(func(res internal.Result) {
			seen = append(seen, res.Message)
		})
		defer cancel()

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		_, err = b.Dispatch(context.Background(), nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"ok", "ok"}, seen)
	})

	t.Run("cancel detaches the observer", func(t *testing.T) {
		t.Parallel()

		b := internal.NewBinding(succeedHandler("ok"))

		var count int
		cancel := b.Subscribe(func(internal.Result) { count++ })

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		cancel()

		_, err = b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestBindingNavigation(t *testing.T) {
	t.Parallel()

	t.Run("redirect runs before refresh", func(t *testing.T) {
		t.Parallel()

		nav := &recordNavigator{}
		b := internal.NewBinding(
			succeedHandler("ok", internal.WithRedirect("/x"), internal.WithRefresh()),
			internal.WithNavigator(nav),
		)

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"navigate:/x", "refresh"}, nav.calls)
	})

	t.Run("no navigation without hints", func(t *testing.T) {
		t.Parallel()

		nav := &recordNavigator{}
		b := internal.NewBinding(succeedHandler("ok"), internal.WithNavigator(nav))

		_, err := b.Dispatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, nav.calls)
	})

	t.Run("navigation follows the end-to-end success scenario", func(t *testing.T) {
		t.Parallel()

		nav := &recordNavigator{}
		b := internal.NewBinding(
			internal.Wrap("signup", func(ctx context.Context, state internal.Result, form url.Values) (internal.Result, error) {
				return internal.Result{}, internal.Succeed("ok", internal.WithRedirect("/x"))
			}),
			internal.WithNavigator(nav),
		)

		form := url.Values{"username": {"ab"}}
		res, err := b.Dispatch(context.Background(), form)
		require.NoError(t, err)

		assert.True(t, res.Success)
		assert.Equal(t, "ok", res.Message)
		assert.Equal(t, "/x", res.Redirect)
		assert.Equal(t, form, res.Payload)
		assert.Equal(t, []string{"navigate:/x"}, nav.calls)
	})
}

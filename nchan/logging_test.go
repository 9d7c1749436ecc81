package nchan_test

import (
	"bytes"
	"log/slog"
	"math/rand"
	randv2 "math/rand/v2"
	"reflect"
	"sync/atomic"
	"testing"

	"github.com/juchiast/neovide/internal/ntest"
	"github.com/juchiast/neovide/nchan"
	"github.com/stretchr/testify/require"
)

type resize struct {
	Width, Height int
}

// countingStringer counts how many times it is rendered.
type countingStringer struct {
	n *atomic.Int32
}

func (c countingStringer) String() string {
	c.n.Add(1)
	return "counted"
}

func TestLoggingSender_Send_tracesValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: nchan.LevelTrace,
	}))

	tx, rx := nchan.New[resize]()
	ls := nchan.Attach(log, tx, "resize-events")
	require.Equal(t, "resize-events", ls.Name())

	require.NoError(t, ls.Send(resize{Width: 100, Height: 50}))
	require.Equal(t, resize{Width: 100, Height: 50}, ntest.RecvSoon(t, rx))

	out := buf.String()
	require.Contains(t, out, "resize-events")
	require.Contains(t, out, "Width:100")
	require.Contains(t, out, "Height:50")
}

func TestLoggingSender_AttachTyped_usesTypeName(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: nchan.LevelTrace,
	}))

	tx, rx := nchan.New[resize]()
	ls := nchan.AttachTyped(log, tx)
	require.Equal(t, "github.com/juchiast/neovide/nchan_test.resize", ls.Name())

	require.NoError(t, ls.Send(resize{Width: 1, Height: 2}))
	_ = ntest.RecvSoon(t, rx)

	require.Contains(t, buf.String(), "github.com/juchiast/neovide/nchan_test.resize")
}

func TestLoggingSender_Send_skipsRenderWhenTraceDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	var n atomic.Int32
	tx, rx := nchan.New[countingStringer]()
	ls := nchan.AttachTyped(log, tx)

	require.NoError(t, ls.Send(countingStringer{n: &n}))
	_ = ntest.RecvSoon(t, rx)

	require.Zero(t, n.Load())
	require.Empty(t, buf.String())

	// Sanity check that rendering would have called String.
	_ = nchan.Render(countingStringer{n: &n})
	require.NotZero(t, n.Load())
}

func TestLoggingSender_Send_receiverClosed(t *testing.T) {
	t.Parallel()

	tx, rx := nchan.New[resize]()
	ls := nchan.AttachTyped(ntest.NewLogger(t), tx)
	rx.Close()

	err := ls.Send(resize{Width: 3, Height: 4})
	require.ErrorIs(t, err, nchan.ErrReceiverClosed)

	var se nchan.SendError[resize]
	require.ErrorAs(t, err, &se)
	require.Equal(t, resize{Width: 3, Height: 4}, se.Value)
}

func TestLoggingSender_copiesShareQueue(t *testing.T) {
	t.Parallel()

	tx, rx := nchan.New[int]()
	a := nchan.Attach(ntest.NewLogger(t), tx, "ints")
	b := a

	require.NoError(t, a.Send(1))
	require.NoError(t, b.Send(2))
	require.NoError(t, a.Unwrap().Send(3))

	require.Equal(t, "ints", b.Name())
	require.Equal(t, 1, ntest.RecvSoon(t, rx))
	require.Equal(t, 2, ntest.RecvSoon(t, rx))
	require.Equal(t, 3, ntest.RecvSoon(t, rx))
}

func TestQualifiedName(t *testing.T) {
	t.Parallel()

	// Both packages are named rand, so the short names collide.
	v1 := reflect.TypeFor[rand.Rand]()
	v2 := reflect.TypeFor[randv2.Rand]()
	require.Equal(t, v1.String(), v2.String())
	require.Equal(t, "math/rand.Rand", nchan.QualifiedName(v1))
	require.Equal(t, "math/rand/v2.Rand", nchan.QualifiedName(v2))

	for _, tc := range []struct {
		typ  reflect.Type
		want string
	}{
		{typ: reflect.TypeFor[int](), want: "int"},
		{typ: reflect.TypeFor[error](), want: "error"},
		{typ: reflect.TypeFor[[]*resize](), want: "[]*github.com/juchiast/neovide/nchan_test.resize"},
		{typ: reflect.TypeFor[[2]resize](), want: "[2]github.com/juchiast/neovide/nchan_test.resize"},
		{typ: reflect.TypeFor[map[string]*randv2.Rand](), want: "map[string]*math/rand/v2.Rand"},
		{typ: reflect.TypeFor[<-chan int](), want: "<-chan int"},
		{typ: reflect.TypeFor[chan<- int](), want: "chan<- int"},
		{typ: reflect.TypeFor[chan int](), want: "chan int"},
		{typ: reflect.TypeFor[struct{ X int }](), want: "struct { X int }"},
	} {
		require.Equal(t, tc.want, nchan.QualifiedName(tc.typ))
	}

	require.Equal(t, "*math/rand.Rand", nchan.TypeName[*rand.Rand]())
}

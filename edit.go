package docpath

import (
	"math/big"
	"net/url"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Edit chains mutations on a node. The first failure is kept and every later
// call becomes a no-op, so a sequence can be checked once with Err.
//
//	err := doc.Edit().
//		WithString("name/first", "Jane").
//		WithInt("age", 41).
//		Remove("nickname").
//		Err()
type Edit struct {
	node *Node
	err  error
}

// Edit starts a chain of mutations relative to n.
func (n *Node) Edit() *Edit {
	return &Edit{node: n}
}

// Err returns the first failure of the chain.
func (e *Edit) Err() error {
	return e.err
}

// Node returns the node the chain edits.
func (e *Edit) Node() *Node {
	return e.node
}

func (e *Edit) apply(fn func(n *Node) error) *Edit {
	if e.err == nil {
		e.err = fn(e.node)
	}
	return e
}

func (e *Edit) With(path string, value any) *Edit {
	return e.apply(func(n *Node) error {
		_, err := n.With(path, value)
		return err
	})
}

func (e *Edit) WithNodes(path string, nodes ...*Node) *Edit {
	return e.apply(func(n *Node) error {
		_, err := n.WithNodes(path, nodes...)
		return err
	})
}

// Add creates path without storing a value.
func (e *Edit) Add(path string) *Edit {
	return e.apply(func(n *Node) error {
		_, err := n.Add(path)
		return err
	})
}

func (e *Edit) Remove(path string) *Edit {
	return e.apply(func(n *Node) error {
		return n.Remove(path)
	})
}

func (e *Edit) WithString(path string, value string) *Edit { return e.With(path, value) }

func (e *Edit) WithBool(path string, value bool) *Edit { return e.With(path, value) }

func (e *Edit) WithInt(path string, value int) *Edit { return e.With(path, value) }

func (e *Edit) WithInt32(path string, value int32) *Edit { return e.With(path, value) }

func (e *Edit) WithInt64(path string, value int64) *Edit { return e.With(path, value) }

func (e *Edit) WithFloat32(path string, value float32) *Edit { return e.With(path, value) }

func (e *Edit) WithFloat64(path string, value float64) *Edit { return e.With(path, value) }

func (e *Edit) WithDecimal(path string, value decimal.Decimal) *Edit { return e.With(path, value) }

func (e *Edit) WithBigInt(path string, value *big.Int) *Edit { return e.With(path, value) }

func (e *Edit) WithDate(path string, value civil.Date) *Edit { return e.With(path, value) }

func (e *Edit) WithTimestamp(path string, value time.Time) *Edit { return e.With(path, value) }

func (e *Edit) WithURL(path string, value *url.URL) *Edit { return e.With(path, value) }

func (e *Edit) WithCurrency(path string, value currency.Unit) *Edit { return e.With(path, value) }

func (e *Edit) WithUUID(path string, value uuid.UUID) *Edit { return e.With(path, value) }

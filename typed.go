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

// GetString reads the value at path as a string.
func (n *Node) GetString(path string) (string, error) { return Get[string](n, path) }

func (n *Node) GetStringList(path string) ([]string, error) { return GetList[string](n, path) }

func (n *Node) GetStringSet(path string) ([]string, error) { return GetSet[string](n, path) }

func (n *Node) WithString(path string, value string) (*Node, error) { return n.With(path, value) }

// GetBool reads the value at path as a bool.
func (n *Node) GetBool(path string) (bool, error) { return Get[bool](n, path) }

func (n *Node) GetBoolList(path string) ([]bool, error) { return GetList[bool](n, path) }

func (n *Node) GetBoolSet(path string) ([]bool, error) { return GetSet[bool](n, path) }

func (n *Node) WithBool(path string, value bool) (*Node, error) { return n.With(path, value) }

// GetInt reads the value at path as an int.
func (n *Node) GetInt(path string) (int, error) { return Get[int](n, path) }

func (n *Node) GetIntList(path string) ([]int, error) { return GetList[int](n, path) }

func (n *Node) GetIntSet(path string) ([]int, error) { return GetSet[int](n, path) }

func (n *Node) WithInt(path string, value int) (*Node, error) { return n.With(path, value) }

// GetInt32 reads the value at path as an int32.
func (n *Node) GetInt32(path string) (int32, error) { return Get[int32](n, path) }

func (n *Node) GetInt32List(path string) ([]int32, error) { return GetList[int32](n, path) }

func (n *Node) GetInt32Set(path string) ([]int32, error) { return GetSet[int32](n, path) }

func (n *Node) WithInt32(path string, value int32) (*Node, error) { return n.With(path, value) }

// GetInt64 reads the value at path as an int64.
func (n *Node) GetInt64(path string) (int64, error) { return Get[int64](n, path) }

func (n *Node) GetInt64List(path string) ([]int64, error) { return GetList[int64](n, path) }

func (n *Node) GetInt64Set(path string) ([]int64, error) { return GetSet[int64](n, path) }

func (n *Node) WithInt64(path string, value int64) (*Node, error) { return n.With(path, value) }

// GetFloat32 reads the value at path as a float32.
func (n *Node) GetFloat32(path string) (float32, error) { return Get[float32](n, path) }

func (n *Node) GetFloat32List(path string) ([]float32, error) { return GetList[float32](n, path) }

func (n *Node) GetFloat32Set(path string) ([]float32, error) { return GetSet[float32](n, path) }

func (n *Node) WithFloat32(path string, value float32) (*Node, error) { return n.With(path, value) }

// GetFloat64 reads the value at path as a float64.
func (n *Node) GetFloat64(path string) (float64, error) { return Get[float64](n, path) }

func (n *Node) GetFloat64List(path string) ([]float64, error) { return GetList[float64](n, path) }

func (n *Node) GetFloat64Set(path string) ([]float64, error) { return GetSet[float64](n, path) }

func (n *Node) WithFloat64(path string, value float64) (*Node, error) { return n.With(path, value) }

// GetDecimal reads the value at path as an arbitrary-precision decimal.
func (n *Node) GetDecimal(path string) (decimal.Decimal, error) { return Get[decimal.Decimal](n, path) }

func (n *Node) GetDecimalList(path string) ([]decimal.Decimal, error) { return GetList[decimal.Decimal](n, path) }

func (n *Node) GetDecimalSet(path string) ([]decimal.Decimal, error) { return GetSet[decimal.Decimal](n, path) }

func (n *Node) WithDecimal(path string, value decimal.Decimal) (*Node, error) { return n.With(path, value) }

// GetBigInt reads the value at path as an arbitrary-precision integer.
func (n *Node) GetBigInt(path string) (*big.Int, error) { return Get[*big.Int](n, path) }

func (n *Node) GetBigIntList(path string) ([]*big.Int, error) { return GetList[*big.Int](n, path) }

func (n *Node) GetBigIntSet(path string) ([]*big.Int, error) { return GetSet[*big.Int](n, path) }

func (n *Node) WithBigInt(path string, value *big.Int) (*Node, error) { return n.With(path, value) }

// GetDate reads the value at path as a calendar date (YYYY-MM-DD).
func (n *Node) GetDate(path string) (civil.Date, error) { return Get[civil.Date](n, path) }

func (n *Node) GetDateList(path string) ([]civil.Date, error) { return GetList[civil.Date](n, path) }

func (n *Node) GetDateSet(path string) ([]civil.Date, error) { return GetSet[civil.Date](n, path) }

func (n *Node) WithDate(path string, value civil.Date) (*Node, error) { return n.With(path, value) }

// GetTimestamp reads the value at path as an RFC 3339 timestamp.
func (n *Node) GetTimestamp(path string) (time.Time, error) { return Get[time.Time](n, path) }

func (n *Node) GetTimestampList(path string) ([]time.Time, error) { return GetList[time.Time](n, path) }

func (n *Node) GetTimestampSet(path string) ([]time.Time, error) { return GetSet[time.Time](n, path) }

func (n *Node) WithTimestamp(path string, value time.Time) (*Node, error) { return n.With(path, value) }

// GetURL reads the value at path as an absolute URL.
func (n *Node) GetURL(path string) (*url.URL, error) { return Get[*url.URL](n, path) }

func (n *Node) GetURLList(path string) ([]*url.URL, error) { return GetList[*url.URL](n, path) }

func (n *Node) GetURLSet(path string) ([]*url.URL, error) { return GetSet[*url.URL](n, path) }

func (n *Node) WithURL(path string, value *url.URL) (*Node, error) { return n.With(path, value) }

// GetCurrency reads the value at path as an ISO 4217 currency.
func (n *Node) GetCurrency(path string) (currency.Unit, error) { return Get[currency.Unit](n, path) }

func (n *Node) GetCurrencyList(path string) ([]currency.Unit, error) { return GetList[currency.Unit](n, path) }

func (n *Node) GetCurrencySet(path string) ([]currency.Unit, error) { return GetSet[currency.Unit](n, path) }

func (n *Node) WithCurrency(path string, value currency.Unit) (*Node, error) { return n.With(path, value) }

// GetUUID reads the value at path as a UUID.
func (n *Node) GetUUID(path string) (uuid.UUID, error) { return Get[uuid.UUID](n, path) }

func (n *Node) GetUUIDList(path string) ([]uuid.UUID, error) { return GetList[uuid.UUID](n, path) }

func (n *Node) GetUUIDSet(path string) ([]uuid.UUID, error) { return GetSet[uuid.UUID](n, path) }

func (n *Node) WithUUID(path string, value uuid.UUID) (*Node, error) { return n.With(path, value) }

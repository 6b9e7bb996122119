package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/Alturino/tgcart/internal/common/validate"
)

// ProductID is an opaque catalog identifier. The catalog may send it as a
// JSON string or a JSON number; the kind is kept so re-encoding yields the
// same JSON the catalog sent.
type ProductID struct {
	value   string
	numeric bool
}

func StringProductID(v string) ProductID {
	return ProductID{value: v}
}

func NumericProductID(n int64) ProductID {
	return ProductID{value: strconv.FormatInt(n, 10), numeric: true}
}

func (p ProductID) String() string {
	return p.value
}

func (p ProductID) IsZero() bool {
	return p.value == ""
}

func (p ProductID) MarshalJSON() ([]byte, error) {
	if p.numeric {
		return []byte(p.value), nil
	}
	return json.Marshal(p.value)
}

func (p *ProductID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*p = ProductID{}
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = ProductID{value: s}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("product id must be a string or number, got %s", b)
	}
	*p = ProductID{value: n.String(), numeric: true}
	return nil
}

func productIDValue(v reflect.Value) interface{} {
	id, ok := v.Interface().(ProductID)
	if !ok {
		return nil
	}
	return id.value
}

func init() {
	validate.New().RegisterCustomTypeFunc(productIDValue, ProductID{})
}

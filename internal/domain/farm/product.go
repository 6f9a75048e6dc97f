package farm

import "fmt"

// ProductKind identifies a fungible good.
type ProductKind string

const (
	Water      ProductKind = "water"
	AnimalFood ProductKind = "animal_food"
	WheatSeed  ProductKind = "wheat_seed"
	CornSeed   ProductKind = "corn_seed"
	Tuber      ProductKind = "tuber"
	Egg        ProductKind = "egg"
	Wool       ProductKind = "wool"
	Milk       ProductKind = "milk"
)

// ProductSpec holds the fixed parameters of a product kind.
type ProductSpec struct {
	Kind     ProductKind `yaml:"kind"`
	Name     string      `yaml:"name"`
	BuyPrice float64     `yaml:"buy_price"`
}

// Name returns the display name, or the raw tag for unknown kinds.
func (k ProductKind) Name() string {
	if spec, ok := defaultCatalog.products[k]; ok {
		return spec.Name
	}
	return string(k)
}

// Price is the unit price used both for buying and selling.
func (k ProductKind) Price() float64 {
	return defaultCatalog.products[k].BuyPrice
}

// Valid reports whether the kind exists in the catalog.
func (k ProductKind) Valid() bool {
	_, ok := defaultCatalog.products[k]
	return ok
}

// ProductStack is a quantity of one product kind. It is a value type: storage
// and creatures copy stacks in and out, nothing shares a stack.
type ProductStack struct {
	Kind     ProductKind `json:"kind"`
	Quantity float64     `json:"quantity"`
}

// NewStack builds a stack of the given kind and quantity.
func NewStack(kind ProductKind, quantity float64) ProductStack {
	return ProductStack{Kind: kind, Quantity: quantity}
}

// Empty reports whether the stack holds nothing.
func (s ProductStack) Empty() bool {
	return !(s.Quantity > 0)
}

// Value is the stack's worth at the catalog price.
func (s ProductStack) Value() float64 {
	return s.Kind.Price() * s.Quantity
}

func (s ProductStack) String() string {
	return fmt.Sprintf("%s - %g", s.Kind.Name(), s.Quantity)
}

package domain

// BillItem is one line item on a restaurant bill. The set of variants is
// closed: an item is either a SharedItem, split evenly across the roster, or
// a PersonalItem, owed entirely by one named diner.
type BillItem interface {
	// ItemName returns the display name of the line item.
	ItemName() string
	// ItemPrice returns the item price. Prices are validated non-negative
	// by the loader.
	ItemPrice() float64

	// billItem keeps the variant set closed to this package.
	billItem()
}

// SharedItem is a line item whose cost is divided evenly among all
// participants.
type SharedItem struct {
	Name  string
	Price float64
}

// PersonalItem is a line item attributed to a single participant.
type PersonalItem struct {
	Name   string
	Price  float64
	Person string
}

func (i SharedItem) ItemName() string { return i.Name }

func (i SharedItem) ItemPrice() float64 { return i.Price }

func (i SharedItem) billItem() {}

func (i PersonalItem) ItemName() string { return i.Name }

func (i PersonalItem) ItemPrice() float64 { return i.Price }

func (i PersonalItem) billItem() {}

// BillInput is one parsed bill, ready for splitting. The gateway layer is
// responsible for producing well-shaped values; the calculator assumes the
// shape is already valid.
type BillInput struct {
	Date          string // YYYY-MM-DD, plausibility-checked by the loader
	Location      string
	TipPercentage float64 // percentage points, 15 means 15%
	Items         []BillItem
	Persons       []string // optional roster override; empty means infer from items
}

// PersonItem is the final amount one participant owes, rounded to the
// nearest tenth of a currency unit.
type PersonItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// BillOutput is the result of splitting one bill.
type BillOutput struct {
	Date        string       `json:"date"` // display form, e.g. 2024年3月21日
	Location    string       `json:"location"`
	SubTotal    float64      `json:"subTotal"`
	Tip         float64      `json:"tip"`
	TotalAmount float64      `json:"totalAmount"`
	Items       []PersonItem `json:"items"`
}

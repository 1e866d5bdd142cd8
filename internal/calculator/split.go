// Package calculator implements the bill splitting engine: given one parsed
// bill it computes the subtotal, the tip, the grand total, and a per-person
// breakdown that is reconciled against the grand total.
//
// Every monetary rounding in the package goes through RoundToTenth. Each
// participant's tip is recomputed from their own subtotal rather than
// prorated from the rounded bill-level tip, so the rounded per-person
// amounts can drift a tenth or two from the grand total; the reconciliation
// step closes that gap through the first roster member.
package calculator

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"warikan/internal/domain"
)

// Split computes the full allocation for one bill. It is deterministic and
// total: any structurally valid input produces an output, and no step
// performs I/O.
func Split(input domain.BillInput) domain.BillOutput {
	subTotal := SubTotal(input.Items)
	tip := CalculateTip(subTotal, input.TipPercentage)
	totalAmount := subTotal + tip

	roster := ResolveParticipants(input.Items, input.Persons)
	items := personItems(input.Items, roster, input.TipPercentage)
	items = reconcile(items, totalAmount)

	return domain.BillOutput{
		Date:        FormatDate(input.Date),
		Location:    input.Location,
		SubTotal:    subTotal,
		Tip:         tip,
		TotalAmount: totalAmount,
		Items:       items,
	}
}

// FormatDate renders a YYYY-MM-DD date in Japanese display form:
// "2024-03-21" becomes "2024年3月21日". Month and day are parsed as integers
// to strip leading zeros; the year token passes through untouched. The date
// is not checked against a real calendar ("2024-13-40" renders as
// 2024年13月40日), and missing or non-numeric tokens degrade to 0 rather
// than failing.
func FormatDate(date string) string {
	parts := strings.Split(date, "-")
	year := parts[0]
	var month, day int
	if len(parts) > 1 {
		month, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		day, _ = strconv.Atoi(parts[2])
	}
	return fmt.Sprintf("%s年%d月%d日", year, month, day)
}

// SubTotal sums every item price, shared and personal alike. No rounding
// happens here; an empty bill yields 0.
func SubTotal(items []domain.BillItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.ItemPrice()
	}
	return sum
}

// CalculateTip returns the tip on a subtotal at the given percentage,
// rounded to the nearest tenth. The same computation is applied per
// participant to their own subtotal.
func CalculateTip(subTotal, tipPercentage float64) float64 {
	return RoundToTenth(subTotal * tipPercentage / 100)
}

// RoundToTenth rounds to the nearest 0.1 currency unit, halves away from
// zero. All rounding in the engine goes through this one helper so drift
// between the per-person amounts and the grand total stays within a few
// tenths.
func RoundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// ResolveParticipants determines the allocation roster. A non-empty persons
// override is used exactly as given: order preserved, duplicates kept.
// Otherwise the roster is the distinct owners of personal items, sorted
// alphabetically. A bill with only shared items and no override resolves to
// an empty roster, in which case nothing is allocated even though the bill
// total is positive.
func ResolveParticipants(items []domain.BillItem, persons []string) []string {
	if len(persons) > 0 {
		return persons
	}

	seen := make(map[string]bool)
	var roster []string
	for _, item := range items {
		personal, ok := item.(domain.PersonalItem)
		if !ok || seen[personal.Person] {
			continue
		}
		seen[personal.Person] = true
		roster = append(roster, personal.Person)
	}
	sort.Strings(roster)
	return roster
}

// personItems computes each roster member's rounded amount: their personal
// items, plus an equal slice of the shared pool, plus the tip on that
// personal subtotal. Roster entries are not merged; two entries naming the
// same person each receive a full share.
func personItems(items []domain.BillItem, roster []string, tipPercentage float64) []domain.PersonItem {
	result := make([]domain.PersonItem, 0, len(roster))
	if len(roster) == 0 {
		return result
	}

	sharedPerPerson := sharedTotal(items) / float64(len(roster))
	for _, person := range roster {
		personSubTotal := personalTotal(items, person) + sharedPerPerson
		personTip := CalculateTip(personSubTotal, tipPercentage)
		result = append(result, domain.PersonItem{
			Name:   person,
			Amount: RoundToTenth(personSubTotal + personTip),
		})
	}
	return result
}

// sharedTotal sums the prices of the shared items only.
func sharedTotal(items []domain.BillItem) float64 {
	var sum float64
	for _, item := range items {
		if _, ok := item.(domain.SharedItem); ok {
			sum += item.ItemPrice()
		}
	}
	return sum
}

// personalTotal sums the prices of the personal items owned by person.
func personalTotal(items []domain.BillItem, person string) float64 {
	var sum float64
	for _, item := range items {
		if personal, ok := item.(domain.PersonalItem); ok && personal.Person == person {
			sum += personal.Price
		}
	}
	return sum
}

// reconcile forces the rounded per-person amounts to add up to the grand
// total. When the rounded difference exceeds 0.01 in absolute value, the
// first roster member absorbs the entire difference; no proportional or
// largest-remainder spreading is attempted. A fresh slice is returned so
// callers never observe a half-adjusted breakdown.
func reconcile(items []domain.PersonItem, totalAmount float64) []domain.PersonItem {
	if len(items) == 0 {
		return items
	}

	var allocated float64
	for _, item := range items {
		allocated += item.Amount
	}
	difference := RoundToTenth(totalAmount - allocated)
	if math.Abs(difference) <= 0.01 {
		return items
	}

	adjusted := make([]domain.PersonItem, len(items))
	copy(adjusted, items)
	adjusted[0].Amount = RoundToTenth(adjusted[0].Amount + difference)
	return adjusted
}

// Package cart executes assistant actions against a client-held cart.
package cart

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/niksmo/shop-assistant/internal/core/domain"
	"github.com/niksmo/shop-assistant/internal/core/port"
)

const (
	minQuantity = 1
	maxQuantity = 10
)

var (
	ErrUnknownAction     = errors.New("unknown action type")
	ErrUnresolvedProduct = errors.New("product could not be resolved")
)

// Notifier receives the user-visible outcome of a dispatched action.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	FollowUp(msg string)
}

// Dispatcher resolves addToCart actions and merges them into cart lines.
type Dispatcher struct {
	catalog  port.Catalog
	variant  domain.Variant
	notifier Notifier

	nameToID map[string]string

	mu    sync.Mutex
	lines map[string]int
}

func NewDispatcher(catalog port.Catalog, v domain.Variant, n Notifier) *Dispatcher {
	nameToID := make(map[string]string)
	for _, p := range catalog.Query(v, domain.ProductQuery{}) {
		nameToID[strings.ToLower(p.Name)] = p.ID
	}

	return &Dispatcher{
		catalog:  catalog,
		variant:  v,
		notifier: n,
		nameToID: nameToID,
		lines:    make(map[string]int),
	}
}

// Dispatch resolves the action to a catalog product and adds it to the
// cart. Resolution failures surface through the notifier and leave the
// cart untouched.
func (d *Dispatcher) Dispatch(a domain.Action) error {
	if a.Type != domain.ActionAddToCart {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}

	id, err := d.resolve(a.Params)
	if err != nil {
		d.notifier.Error("No se pudo añadir el producto al carrito.")
		return err
	}

	product, err := d.catalog.FindByID(d.variant, id)
	if err != nil {
		d.notifier.Error("No se pudo añadir el producto al carrito.")
		return fmt.Errorf("%w: %q", ErrUnresolvedProduct, id)
	}

	qty := clampQuantity(a.Params.Quantity)

	d.mu.Lock()
	d.lines[product.ID] += qty
	d.mu.Unlock()

	d.notifier.Success(fmt.Sprintf("%s añadido al carrito.", product.Name))
	d.notifier.FollowUp("¿Te puedo ayudar con algo más?")
	return nil
}

func (d *Dispatcher) resolve(p domain.ActionParams) (string, error) {
	if p.ProductID != "" {
		return p.ProductID, nil
	}
	if p.ProductName != "" {
		if id, ok := d.nameToID[strings.ToLower(p.ProductName)]; ok {
			return id, nil
		}
		return "", fmt.Errorf("%w: name %q", ErrUnresolvedProduct, p.ProductName)
	}
	return "", ErrUnresolvedProduct
}

// Lines returns the current cart content ordered by product id.
func (d *Dispatcher) Lines() []domain.CartLine {
	d.mu.Lock()
	defer d.mu.Unlock()

	lines := make([]domain.CartLine, 0, len(d.lines))
	for id, qty := range d.lines {
		lines = append(lines, domain.CartLine{ProductID: id, Quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ProductID < lines[j].ProductID
	})
	return lines
}

func clampQuantity(q int) int {
	if q < minQuantity {
		return minQuantity
	}
	if q > maxQuantity {
		return maxQuantity
	}
	return q
}

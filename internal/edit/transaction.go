package edit

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/skullgoth/opentripboard-sub000/internal/models"
)

// FieldSaver is the persistence collaborator committing one field at a time
type FieldSaver interface {
	SaveField(ctx context.Context, itemID int64, field string, value any, silent bool) error
}

// Edit states of an item
type State int

const (
	Viewing State = iota
	Editing
	Saving
)

// stagedField is one pending change with its pre-edit snapshot
type stagedField struct {
	name     string
	newValue any
	original any
}

// SaveResult is the aggregated outcome of committing one edit transaction
type SaveResult struct {
	ItemID          int64
	Saved           []string
	Failed          []string
	CategoryChanged bool
}

// Ok reports whether every staged field committed
func (r SaveResult) Ok() bool {
	return len(r.Failed) == 0
}

// Transaction is the staged-but-uncommitted edit set for one item
type Transaction struct {
	item   *models.TimelineItem
	state  State
	staged []stagedField
	fields []FieldDescriptor // current metadata schema, tracks category
	origin string            // category at edit start, anchors schema revert
}

// Item returns the item under edit
func (t *Transaction) Item() *models.TimelineItem { return t.item }

// State returns the transaction state
func (t *Transaction) State() State { return t.state }

// Dirty reports whether any field is staged
func (t *Transaction) Dirty() bool { return len(t.staged) > 0 }

// Fields returns the item's current editable metadata schema. Staging a new
// category regenerates it immediately.
func (t *Transaction) Fields() []FieldDescriptor { return t.fields }

// Manager coordinates pending edit transactions across one view. At most
// one item is in Editing state at a time; starting an edit on another item
// auto-commits the dirty one first.
type Manager struct {
	saver FieldSaver

	mu      sync.Mutex
	current *Transaction

	// onSaved fires once per committed transaction (the aggregated
	// notification); onCategoryChanged fires afterward when the category
	// field was among the committed changes.
	onSaved           func(SaveResult)
	onCategoryChanged func(itemID int64, category string)
}

// NewManager creates an edit manager backed by the given persistence
// collaborator
func NewManager(saver FieldSaver) *Manager {
	return &Manager{saver: saver}
}

// OnSaved registers the aggregated save notification callback
func (m *Manager) OnSaved(fn func(SaveResult)) {
	m.mu.Lock()
	m.onSaved = fn
	m.mu.Unlock()
}

// OnCategoryChanged registers the callback fired after a committed category
// change, so the owning view can re-expand and re-group the timeline
func (m *Manager) OnCategoryChanged(fn func(itemID int64, category string)) {
	m.mu.Lock()
	m.onCategoryChanged = fn
	m.mu.Unlock()
}

// StartEdit moves an item into Editing state and returns its transaction.
// A dirty transaction on another item is committed first; a clean one just
// collapses back to Viewing.
func (m *Manager) StartEdit(ctx context.Context, item *models.TimelineItem) (*Transaction, error) {
	m.mu.Lock()
	if m.current != nil && m.current.item.ID == item.ID {
		tx := m.current
		m.mu.Unlock()
		return tx, nil
	}
	needsCommit := m.current != nil && m.current.Dirty()
	m.mu.Unlock()

	if needsCommit {
		if _, err := m.Save(ctx); err != nil {
			log.Printf("[EditManager] auto-commit before edit switch failed: %v", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = &Transaction{
		item:   item,
		state:  Editing,
		fields: FieldsFor(item.Category),
		origin: item.Category,
	}
	return m.current, nil
}

// Editing returns the live transaction, if any
func (m *Manager) Editing() (*Transaction, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current, m.current != nil
}

// StageField stages a single field change without committing it. The
// displayed value updates immediately; the pre-edit value is snapshotted
// once, however often the field is restaged. Staging a category switch
// regenerates the editable-field schema on the spot.
func (m *Manager) StageField(name string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := m.current
	if tx == nil || tx.state != Editing {
		return fmt.Errorf("no item in editing state")
	}

	tx.stage(name, value)
	if name == FieldCategory {
		tx.fields = FieldsFor(asString(value))
	}
	return nil
}

// StageLocation stages the compound location change: the display text and
// both coordinates move together
func (m *Manager) StageLocation(location string, lat, lng float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := m.current
	if tx == nil || tx.state != Editing {
		return fmt.Errorf("no item in editing state")
	}

	tx.stage(FieldLocation, location)
	tx.stage(FieldLatitude, lat)
	tx.stage(FieldLongitude, lng)
	return nil
}

func (t *Transaction) stage(name string, value any) {
	for i := range t.staged {
		if t.staged[i].name == name {
			t.staged[i].newValue = value
			setField(t.item, name, value)
			return
		}
	}
	t.staged = append(t.staged, stagedField{
		name:     name,
		newValue: value,
		original: getField(t.item, name),
	})
	setField(t.item, name, value)
}

// Save commits every staged field sequentially through the save callback.
// Each field fails independently: a failed field reverts its displayed
// value to the pre-edit snapshot while committed fields stand. One
// aggregated notification fires after the whole batch, and a category
// change notification afterward when the category committed.
func (m *Manager) Save(ctx context.Context) (SaveResult, error) {
	m.mu.Lock()
	tx := m.current
	if tx == nil || tx.state != Editing {
		m.mu.Unlock()
		return SaveResult{}, fmt.Errorf("no item in editing state")
	}
	tx.state = Saving
	staged := make([]stagedField, len(tx.staged))
	copy(staged, tx.staged)
	saver := m.saver
	m.mu.Unlock()

	result := SaveResult{ItemID: tx.item.ID}
	for _, f := range staged {
		if err := saver.SaveField(ctx, tx.item.ID, f.name, f.newValue, false); err != nil {
			log.Printf("[EditManager] save field %q on item %d failed: %v", f.name, tx.item.ID, err)
			m.mu.Lock()
			setField(tx.item, f.name, f.original)
			m.mu.Unlock()
			result.Failed = append(result.Failed, f.name)
			continue
		}
		result.Saved = append(result.Saved, f.name)
		if f.name == FieldCategory {
			result.CategoryChanged = true
		}
	}

	m.mu.Lock()
	tx.state = Viewing
	tx.staged = nil
	if result.CategoryChanged {
		// Failed category is already reverted above, keep schema honest
		tx.fields = FieldsFor(tx.item.Category)
	}
	m.current = nil
	onSaved := m.onSaved
	onCategory := m.onCategoryChanged
	category := tx.item.Category
	m.mu.Unlock()

	if onSaved != nil {
		onSaved(result)
	}
	if result.CategoryChanged && onCategory != nil {
		onCategory(result.ItemID, category)
	}
	return result, nil
}

// Cancel reverts every staged field, the compound location state included,
// and restores the editable-field schema to the original category's
func (m *Manager) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := m.current
	if tx == nil {
		return
	}
	for i := len(tx.staged) - 1; i >= 0; i-- {
		setField(tx.item, tx.staged[i].name, tx.staged[i].original)
	}
	tx.staged = nil
	tx.fields = FieldsFor(tx.origin)
	tx.state = Viewing
	m.current = nil
}

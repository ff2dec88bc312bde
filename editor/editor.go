// Package editor owns the single working-copy lifecycle of a report being
// edited: load, local mutation, save, reset, export. It is UI-free; the hosting
// surface supplies destructive-action confirmations through Confirmer.
package editor

import (
	"context"
	"fmt"

	"bitbucket.org/intheforest/reports_backend/generator"
	"bitbucket.org/intheforest/reports_backend/models"
)

type State string

const (
	StateClean State = "clean"
	StateDirty State = "dirty"
)

// Confirmer answers an explicit confirm-intent request before a destructive
// mutation (row delete, reset) is applied.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a plain function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Saver is the slice of the store the editor needs. *store.Store satisfies it.
type Saver interface {
	Upsert(ctx context.Context, report *models.Report) (*models.Report, error)
}

// ItemField names the editable columns of an inspection row.
type ItemField string

const (
	FieldCategory ItemField = "category"
	FieldCriteria ItemField = "criteria"
	FieldResult   ItemField = "result"
	FieldOpinion  ItemField = "opinion"
)

// Editor holds one working-copy report plus the snapshot it was loaded from.
// Edits touch only the working copy; Save pushes it to the store wholesale.
type Editor struct {
	working  *models.Report
	baseline *models.Report
	state    State
	store    Saver
	confirm  Confirmer
}

func New(report *models.Report, store Saver, confirm Confirmer) (*Editor, error) {
	working, err := report.Clone()
	if err != nil {
		return nil, err
	}
	baseline, err := report.Clone()
	if err != nil {
		return nil, err
	}
	return &Editor{
		working:  working,
		baseline: baseline,
		state:    StateClean,
		store:    store,
		confirm:  confirm,
	}, nil
}

func (e *Editor) State() State { return e.state }

// Report exposes the live working copy for rendering. Callers must route
// mutations through the editor so the dirty flag stays truthful.
func (e *Editor) Report() *models.Report { return e.working }

func (e *Editor) markDirty() { e.state = StateDirty }

func (e *Editor) SetTitle(title string) {
	e.working.Title = title
	e.markDirty()
}

func (e *Editor) SetInspector(inspector string) {
	e.working.Inspector = inspector
	e.markDirty()
}

// SetThemeColor updates one theme color, creating the theme block on first use.
func (e *Editor) SetThemeColor(primary, secondary string) {
	if e.working.Theme == nil {
		e.working.Theme = &models.ThemeConfig{}
	}
	if primary != "" {
		e.working.Theme.Primary = primary
	}
	if secondary != "" {
		e.working.Theme.Secondary = secondary
	}
	e.markDirty()
}

// UpdateItemField writes one cell of the working copy.
func (e *Editor) UpdateItemField(sectionId, itemId string, field ItemField, value string) error {
	item := e.findItem(sectionId, itemId)
	if item == nil {
		return fmt.Errorf("editor: item %s/%s not found", sectionId, itemId)
	}
	switch field {
	case FieldCategory:
		item.Category = value
	case FieldCriteria:
		item.Criteria = value
	case FieldResult:
		item.Result = value
	case FieldOpinion:
		item.Opinion = value
	default:
		return fmt.Errorf("editor: unknown field %q", field)
	}
	e.markDirty()
	return nil
}

// UpdateCustomInfo applies an edit to the custom header block. The callback
// mutates the working copy's header in place; any call marks the editor dirty.
func (e *Editor) UpdateCustomInfo(edit func(info *models.CustomReportInfo)) error {
	if e.working.CustomInfo == nil {
		return fmt.Errorf("editor: report %s has no custom header", e.working.Id)
	}
	edit(e.working.CustomInfo)
	e.markDirty()
	return nil
}

// DeleteItem soft-deletes a row after an explicit confirmation. Returns whether
// the delete was applied; declining leaves the state untouched.
func (e *Editor) DeleteItem(sectionId, itemId string) (bool, error) {
	item := e.findItem(sectionId, itemId)
	if item == nil {
		return false, fmt.Errorf("editor: item %s/%s not found", sectionId, itemId)
	}
	if !e.confirm.Confirm("이 행을 삭제하시겠습니까?") {
		return false, nil
	}
	item.IsDeleted = true
	e.markDirty()
	return true, nil
}

// Save writes the full working copy through the store. On success the stored
// record (with server-assigned timestamps) becomes the new clean baseline; on
// failure the working copy keeps its pending edits.
func (e *Editor) Save(ctx context.Context) error {
	stored, err := e.store.Upsert(ctx, e.working)
	if err != nil {
		return err
	}
	baseline, err := stored.Clone()
	if err != nil {
		return err
	}
	e.working = stored
	e.baseline = baseline
	e.state = StateClean
	return nil
}

// Reset discards local edits after confirmation and restores the snapshot that
// was active when editing began. Returns whether the reset happened.
func (e *Editor) Reset() (bool, error) {
	if !e.confirm.Confirm("변경사항을 취소하고 마지막 저장 상태로 되돌리시겠습니까?") {
		return false, nil
	}
	working, err := e.baseline.Clone()
	if err != nil {
		return false, err
	}
	e.working = working
	e.state = StateClean
	return true, nil
}

// Export renders the current working copy (dirty or clean) to standalone HTML.
// The filename is deterministic in the report id.
func (e *Editor) Export() (filename string, html string) {
	return generator.ExportFilename(e.working.Id), generator.GenerateHTMLReport(e.working)
}

func (e *Editor) findItem(sectionId, itemId string) *models.InspectionItem {
	for si := range e.working.Sections {
		if e.working.Sections[si].Id != sectionId {
			continue
		}
		items := e.working.Sections[si].Items
		for ii := range items {
			if items[ii].Id == itemId {
				return &items[ii]
			}
		}
	}
	return nil
}

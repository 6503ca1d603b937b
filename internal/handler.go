package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/contentkit/customfields/pkg/field"
	"github.com/contentkit/customfields/pkg/fieldtype"
	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/notify"
	"github.com/contentkit/customfields/pkg/store"
)

// maxNameSuffix caps the numeric-suffix search for a unique category name.
// Hitting the cap means something is systematically wrong with the scope's
// configuration, so the caller gets an explicit error instead of a longer
// loop.
const maxNameSuffix = 100

// Handler serves one (component, area, itemID) scope: its categories and
// field definitions, and the field values of the scope's records. Obtain
// handlers through the Registry; they are memoized per scope and safe for
// concurrent use.
type Handler struct {
	scope field.Scope
	reg   *registration
	r     *Registry
}

// Scope returns the handler's (component, area, itemID) triple.
func (h *Handler) Scope() field.Scope {
	return h.scope
}

// Binding returns the content type's binding.
func (h *Handler) Binding() Binding {
	return h.reg.binding
}

// UsesCategories reports whether the area exposes category management.
func (h *Handler) UsesCategories() bool {
	return h.reg.usesCategories
}

// UsesItemID reports whether the area partitions fields by item id.
func (h *Handler) UsesItemID() bool {
	return h.reg.usesItemID
}

// ConfigURL returns the content type's field configuration page URL.
func (h *Handler) ConfigURL() string {
	return h.reg.binding.ConfigURL()
}

// Definitions returns the scope's categories with their fields, ordered.
//
// For areas without category management the first call on an empty scope
// creates the single default category, so callers always see at least one
// category to attach fields to.
func (h *Handler) Definitions(ctx context.Context) ([]*field.Category, error) {
	defs, err := h.loadDefinitions(ctx)
	if err != nil {
		return nil, err
	}

	if len(defs) == 0 && !h.reg.usesCategories {
		if err := h.createDefaultCategory(ctx); err != nil {
			return nil, err
		}
		return h.loadDefinitions(ctx)
	}

	return defs, nil
}

func (h *Handler) loadDefinitions(ctx context.Context) ([]*field.Category, error) {
	return h.r.loads.GetOrLoad(ctx, h.r.cache, h.scope, func(ctx context.Context) ([]*field.Category, time.Duration, error) {
		defs, err := h.r.store.Definitions(ctx, h.scope)
		if err != nil {
			return nil, 0, err
		}
		return defs, h.r.defsTTL, nil
	})
}

func (h *Handler) createDefaultCategory(ctx context.Context) error {
	cat, err := h.NewCategory(ctx)
	if err != nil {
		return err
	}
	if err := h.r.store.SaveCategory(ctx, cat); err != nil {
		// A concurrent caller may have created it first; the re-query
		// picks up whichever row won.
		if !errors.Is(err, store.ErrDuplicateName) {
			return err
		}
	}
	return h.invalidate(ctx)
}

// NewCategory returns an unsaved category for the scope with a name no
// existing category uses, trying "Other fields", then "Other fields 1" and
// so on. Persist it with SaveCategory.
func (h *Handler) NewCategory(ctx context.Context) (*field.Category, error) {
	cfgCtx, err := h.reg.binding.ConfigContext(ctx)
	if err != nil {
		return nil, err
	}

	defs, err := h.r.store.Definitions(ctx, h.scope)
	if err != nil {
		return nil, err
	}

	base := h.r.t("category.default", nil)
	for i := 0; i <= maxNameSuffix; i++ {
		name := base
		if i > 0 {
			name = fmt.Sprintf("%s %d", base, i)
		}
		exists, err := h.r.store.CategoryNameExists(ctx, h.scope, name)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		cat := field.NewCategory(h.scope, cfgCtx.ID, name)
		cat.SortOrder = len(defs)
		return cat, nil
	}

	return nil, errors.Join(ErrCategoryNameExhausted, fmt.Errorf("scope %s", h.scope))
}

// NewField returns an unsaved field of the given registered type attached
// to the category. Persist it with SaveField.
func (h *Handler) NewField(cat *field.Category, typeName string) (*field.Field, error) {
	if _, err := h.r.types.Type(typeName); err != nil {
		return nil, errors.Join(ErrUnknownFieldType, fmt.Errorf("type %q", typeName))
	}
	f := field.New(cat, typeName)
	f.SortOrder = len(cat.Fields)
	return f, nil
}

// ConfigForm builds the configuration form for a field: the common
// controls, the field type's own controls, and whatever the binding
// contributes.
func (h *Handler) ConfigForm(frm *form.Form, f *field.Field) error {
	t, err := h.r.types.Type(f.Type)
	if err != nil {
		return errors.Join(ErrUnknownFieldType, fmt.Errorf("type %q", f.Type))
	}

	frm.AddHeader("config_common", t.Label)
	frm.AddElement(form.KindText, "name", "Name", form.WithDefault(f.Name))
	frm.AddElement(form.KindText, "shortname", "Short name", form.WithDefault(f.ShortName))
	frm.AddElement(form.KindText, "description", "Description", form.WithDefault(f.Description))
	frm.AddElement(form.KindCheckbox, "required", "Required", form.WithDefault(f.Required))
	frm.AddElement(form.KindSelect, "visibility", "Visible to",
		form.WithOptions("hidden", "editors", "everyone"),
		form.WithDefault(f.Visibility.String()))
	_ = frm.Require("name", h.r.t("field.required", map[string]string{"name": "Name"}))
	_ = frm.Require("shortname", h.r.t("field.required", map[string]string{"name": "Short name"}))

	if t.ConfigControls != nil {
		t.ConfigControls(frm, f)
	}
	if c, ok := h.reg.binding.(ConfigFormContributor); ok {
		c.ConfigFormControls(frm, f)
	}

	return nil
}

// SaveCategory applies submitted configuration values and persists the
// category. Validation failures surface as a failure notification and are
// not returned; infrastructure failures are.
func (h *Handler) SaveCategory(ctx context.Context, cat *field.Category, values map[string]any) error {
	if !h.reg.binding.CanConfigure(ctx) {
		return ErrNotConfigurable
	}

	if v, ok := values["name"]; ok {
		cat.Name = strings.TrimSpace(cast.ToString(v))
	}
	if v, ok := values["description"]; ok {
		cat.Description = cast.ToString(v)
	}

	if err := h.r.store.SaveCategory(ctx, cat); err != nil {
		if errors.Is(err, field.ErrValidation) {
			h.saveFailed(ctx, "category.save_failed", cat.Name, err)
			return nil
		}
		return err
	}

	if err := h.invalidate(ctx); err != nil {
		return err
	}
	h.notifySuccess(ctx, "category.saved", cat.Name)
	return nil
}

// SaveField applies submitted configuration values and persists the field
// definition. Keys prefixed "config_" land in the type-specific config
// blob. Error handling mirrors SaveCategory.
func (h *Handler) SaveField(ctx context.Context, f *field.Field, values map[string]any) error {
	if !h.reg.binding.CanConfigure(ctx) {
		return ErrNotConfigurable
	}

	for k, v := range values {
		switch k {
		case "name":
			f.Name = strings.TrimSpace(cast.ToString(v))
		case "shortname":
			f.ShortName = strings.TrimSpace(cast.ToString(v))
		case "description":
			f.Description = cast.ToString(v)
		case "required":
			f.Required = cast.ToBool(v)
		case "visibility":
			vis, err := field.ParseVisibility(cast.ToString(v))
			if err != nil {
				h.saveFailed(ctx, "field.save_failed", f.Name, err)
				return nil
			}
			f.Visibility = vis
		default:
			if name, ok := strings.CutPrefix(k, "config_"); ok {
				f.Config[name] = v
			}
		}
	}

	if err := h.r.store.SaveField(ctx, f); err != nil {
		if errors.Is(err, field.ErrValidation) {
			h.saveFailed(ctx, "field.save_failed", f.Name, err)
			return nil
		}
		return err
	}

	if err := h.invalidate(ctx); err != nil {
		return err
	}
	h.notifySuccess(ctx, "field.saved", f.Name)
	return nil
}

// DeleteCategory removes a category with its fields and their data.
func (h *Handler) DeleteCategory(ctx context.Context, cat *field.Category) error {
	if !h.reg.binding.CanConfigure(ctx) {
		return ErrNotConfigurable
	}
	if err := h.r.store.DeleteCategory(ctx, cat.ID); err != nil {
		return err
	}
	if err := h.invalidate(ctx); err != nil {
		return err
	}
	h.notifySuccess(ctx, "category.deleted", cat.Name)
	return nil
}

// DeleteField removes a field definition and its data rows.
func (h *Handler) DeleteField(ctx context.Context, f *field.Field) error {
	if !h.reg.binding.CanConfigure(ctx) {
		return ErrNotConfigurable
	}
	if err := h.r.store.DeleteField(ctx, f.ID); err != nil {
		return err
	}
	if err := h.invalidate(ctx); err != nil {
		return err
	}
	h.notifySuccess(ctx, "field.deleted", f.Name)
	return nil
}

// Data returns one controller per field of the scope, each loaded with the
// record's stored value when one exists, in category and field order.
func (h *Handler) Data(ctx context.Context, recordID int64) ([]fieldtype.Controller, error) {
	dataCtx, err := h.reg.binding.DataContext(ctx, recordID)
	if err != nil {
		return nil, err
	}

	entries, err := h.r.store.FieldsWithData(ctx, h.scope, recordID)
	if err != nil {
		return nil, err
	}

	controllers := make([]fieldtype.Controller, 0, len(entries))
	for _, e := range entries {
		c, err := h.r.types.Controller(e, recordID, dataCtx.ID)
		if err != nil {
			return nil, err
		}
		controllers = append(controllers, c)
	}
	return controllers, nil
}

// DataForBackup returns controllers only for fields the record has stored
// values for, the set a backup needs to capture.
func (h *Handler) DataForBackup(ctx context.Context, recordID int64) ([]fieldtype.Controller, error) {
	all, err := h.Data(ctx, recordID)
	if err != nil {
		return nil, err
	}
	out := make([]fieldtype.Controller, 0, len(all))
	for _, c := range all {
		if c.HasData() {
			out = append(out, c)
		}
	}
	return out, nil
}

// VisibleData returns the record's controllers filtered by what the
// current user may see, for display surfaces.
func (h *Handler) VisibleData(ctx context.Context, recordID int64) ([]fieldtype.Controller, error) {
	all, err := h.Data(ctx, recordID)
	if err != nil {
		return nil, err
	}
	out := make([]fieldtype.Controller, 0, len(all))
	for _, c := range all {
		if h.reg.binding.CanView(ctx, c.Field(), recordID) {
			out = append(out, c)
		}
	}
	return out, nil
}

// Display renders the record's visible field values as HTML markup.
// Fields without data render nothing.
func (h *Handler) Display(ctx context.Context, recordID int64) (string, error) {
	visible, err := h.VisibleData(ctx, recordID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, c := range visible {
		if !c.HasData() {
			continue
		}
		b.WriteString(c.Display())
	}
	return b.String(), nil
}

// AddToForm appends the scope's field controls to a record edit form: one
// header per category that has controls, then the category's controls in
// order, with required rules. When the current user cannot edit the
// record, the form is read-only: fields the user may not view are left
// out entirely and the remaining controls are frozen.
func (h *Handler) AddToForm(ctx context.Context, frm *form.Form, recordID int64) error {
	defs, err := h.Definitions(ctx)
	if err != nil {
		return err
	}
	controllers, err := h.Data(ctx, recordID)
	if err != nil {
		return err
	}

	canEdit := h.reg.binding.CanEdit(ctx, recordID)

	byCategory := make(map[string][]fieldtype.Controller, len(defs))
	for _, c := range controllers {
		if !canEdit && !h.reg.binding.CanView(ctx, c.Field(), recordID) {
			continue
		}
		id := c.Field().CategoryID
		byCategory[id] = append(byCategory[id], c)
	}

	for _, cat := range defs {
		ctrls := byCategory[cat.ID]
		if len(ctrls) == 0 {
			continue
		}
		frm.AddHeader("category_"+cat.ID, cat.Name)
		for _, c := range ctrls {
			if err := c.AddToForm(frm); err != nil {
				return err
			}
			if c.Field().Required {
				msg := h.r.t("field.required", map[string]string{"name": c.Field().Name})
				if err := frm.Require(c.ElementName(), msg); err != nil {
					return err
				}
			}
		}
	}

	if !canEdit {
		frm.FreezeAll()
	}

	return nil
}

// ApplyFormDefinition runs the per-type adjustments that need the complete
// form, after AddToForm and default filling.
func (h *Handler) ApplyFormDefinition(ctx context.Context, frm *form.Form, recordID int64) error {
	controllers, err := h.Data(ctx, recordID)
	if err != nil {
		return err
	}
	for _, c := range controllers {
		if err := c.AfterData(frm); err != nil {
			return err
		}
	}
	return nil
}

// FillForm loads the record's stored values into the form as defaults.
func (h *Handler) FillForm(ctx context.Context, frm *form.Form, recordID int64) error {
	controllers, err := h.Data(ctx, recordID)
	if err != nil {
		return err
	}
	for _, c := range controllers {
		if err := c.Fill(frm); err != nil {
			return err
		}
	}
	return nil
}

// SaveFormData persists submitted field values for a record. Each field's
// controller maps its submitted value onto the data row; rows are saved
// through the store. Elements absent from values are left untouched.
func (h *Handler) SaveFormData(ctx context.Context, recordID int64, values map[string]any) error {
	controllers, err := h.Data(ctx, recordID)
	if err != nil {
		return err
	}

	for _, c := range controllers {
		v, ok := values[c.ElementName()]
		if !ok {
			continue
		}
		if err := c.PrepareSave(v); err != nil {
			return fmt.Errorf("customfields: save %s: %w", c.Field().ShortName, err)
		}
		if err := h.r.store.SaveData(ctx, c.Data()); err != nil {
			return fmt.Errorf("customfields: save %s: %w", c.Field().ShortName, err)
		}
	}

	return nil
}

// FieldExport is one field's value in webservice shape.
type FieldExport struct {
	Value     any    `json:"value"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	ShortName string `json:"shortname"`
}

// Export returns the record's fields in webservice shape, one entry per
// field of the scope, in definition order.
func (h *Handler) Export(ctx context.Context, recordID int64) ([]FieldExport, error) {
	controllers, err := h.Data(ctx, recordID)
	if err != nil {
		return nil, err
	}

	out := make([]FieldExport, 0, len(controllers))
	for _, c := range controllers {
		f := c.Field()
		out = append(out, FieldExport{
			Type:      f.Type,
			Value:     c.ExportValue(),
			Name:      f.Name,
			ShortName: f.ShortName,
		})
	}
	return out, nil
}

// RestoreEntry is one backed-up field value keyed by short name.
type RestoreEntry struct {
	ShortName string `json:"shortname"`
	Value     string `json:"value"`
	Format    int    `json:"format,omitempty"`
}

// RestoreData writes backed-up values onto a record. Entries whose short
// name no longer exists in the scope are skipped silently: restoring into
// a site with different field configuration is expected. Existing rows
// are updated, missing ones created, all through the regular save path.
func (h *Handler) RestoreData(ctx context.Context, recordID int64, backup []RestoreEntry) error {
	dataCtx, err := h.reg.binding.DataContext(ctx, recordID)
	if err != nil {
		return err
	}

	for _, entry := range backup {
		f, err := h.r.store.FieldByShortName(ctx, h.scope, entry.ShortName)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				h.r.log.DebugContext(ctx, "skipping restore of unknown field",
					slog.String("shortname", entry.ShortName),
					slog.String("scope", h.scope.String()))
				continue
			}
			return err
		}

		d, err := h.r.store.Data(ctx, f.ID, recordID)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			d = field.NewData(f, recordID, dataCtx.ID)
		}
		d.Value = entry.Value
		d.ValueFormat = entry.Format

		if err := h.r.store.SaveData(ctx, d); err != nil {
			return err
		}
	}

	return nil
}

func (h *Handler) invalidate(ctx context.Context) error {
	if err := h.r.cache.Invalidate(ctx, h.scope); err != nil {
		return fmt.Errorf("customfields: invalidate definitions cache: %w", err)
	}
	return nil
}

func (h *Handler) notifySuccess(ctx context.Context, key, name string) {
	h.r.notifier.Notify(ctx, notify.Success(h.r.t(key, map[string]string{"name": name})))
}

func (h *Handler) saveFailed(ctx context.Context, key, name string, err error) {
	h.r.log.WarnContext(ctx, "custom field configuration rejected",
		slog.String("scope", h.scope.String()),
		slog.String("name", name),
		slog.Any("error", err))
	h.r.notifier.Notify(ctx, notify.Failure(h.r.t(key, map[string]string{"name": name})))
}

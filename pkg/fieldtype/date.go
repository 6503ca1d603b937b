package fieldtype

import (
	"fmt"
	"html"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"github.com/contentkit/customfields/pkg/form"
	"github.com/contentkit/customfields/pkg/store"
)

// dateLayout is the HTML date-input wire format.
const dateLayout = "2006-01-02"

// Date is stored as unix seconds (UTC midnight of the chosen day).
type Date struct {
	Base
}

// NewDate builds a date controller.
func NewDate(e store.Entry, recordID, contextID int64) Controller {
	return &Date{Base: NewBase(e, recordID, contextID)}
}

func (d *Date) AddToForm(frm *form.Form) error {
	frm.AddElement(form.KindDate, d.ElementName(), d.Field().Name,
		form.WithHelp(d.Field().Description))
	return nil
}

func (d *Date) Fill(frm *form.Form) error {
	if !d.HasData() {
		return nil
	}
	ts := d.timestamp()
	if ts == 0 {
		return nil
	}
	return frm.SetDefault(d.ElementName(), time.Unix(ts, 0).UTC().Format(dateLayout))
}

// PrepareSave accepts either a "2006-01-02" string from a date input or a
// numeric unix timestamp.
func (d *Date) PrepareSave(v any) error {
	if s := cast.ToString(v); s != "" {
		if t, err := time.ParseInLocation(dateLayout, s, time.UTC); err == nil {
			d.Data().Value = strconv.FormatInt(t.Unix(), 10)
			return nil
		}
	}
	ts := cast.ToInt64(v)
	if ts == 0 {
		d.Data().Value = ""
		return nil
	}
	d.Data().Value = strconv.FormatInt(ts, 10)
	return nil
}

func (d *Date) timestamp() int64 {
	ts, _ := strconv.ParseInt(d.Data().Value, 10, 64)
	return ts
}

func (d *Date) Display() string {
	value := ""
	if ts := d.timestamp(); ts != 0 {
		value = time.Unix(ts, 0).UTC().Format("2 January 2006")
	}
	return fmt.Sprintf("<div class=\"cf-field\"><span class=\"cf-name\">%s</span>: <span class=\"cf-value\">%s</span></div>",
		html.EscapeString(d.Field().Name), value)
}

func (d *Date) ExportValue() any {
	return d.timestamp()
}

package driver

import (
	"encoding/json"
	"fmt"

	"sapling/internal/diag"
	"sapling/internal/observ"
	"sapling/internal/source"
)

// AppendTimings adds an OBS6001 info diagnostic describing timer. The JSON
// form of the report travels in the note for machine consumers. A full bag
// is grown rather than losing the entry.
func AppendTimings(bag *diag.Bag, kind, path string, timer *observ.Timer) {
	if bag == nil || timer == nil {
		return
	}
	payload := struct {
		Kind string `json:"kind"`
		Path string `json:"path,omitempty"`
		observ.Report
	}{Kind: kind, Path: path, Report: timer.Report()}
	if payload.Kind == "" {
		payload.Kind = "pipeline"
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}

	msg := fmt.Sprintf("timings (%s): total %.2f ms", payload.Kind, payload.TotalMS)
	if path != "" {
		msg += ", " + path
	}
	entry := diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, msg).
		WithNote(source.Span{}, string(data))
	if !bag.Add(entry) {
		extra := diag.NewBag(0)
		extra.Add(entry)
		bag.Merge(extra)
	}
}

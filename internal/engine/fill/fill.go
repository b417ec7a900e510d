// Package fill applies the sender profile to a classified form candidate.
// Three passes, in a fixed order: country/dial selects first (selecting a
// country can change which phone field is rendered), then the generic
// input/textarea classification, then checkbox groups. Each required role is
// filled at most once per form; the first matching element wins.
package fill

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/openreach/formpilot/internal/dialcode"
	"github.com/openreach/formpilot/internal/engine/classify"
	"github.com/openreach/formpilot/internal/engine/discovery"
	"github.com/openreach/formpilot/internal/engine/page"
	"github.com/openreach/formpilot/internal/profile"
)

// Result summarizes one fill attempt.
type Result struct {
	// FieldsFilled counts every element successfully mutated, selects and
	// checkboxes included. Reported even on incomplete forms - useful for
	// diagnostics downstream.
	FieldsFilled int
	// Complete is true only when both the email and the message roles were
	// satisfied; anything less is not submission-ready.
	Complete bool
	// Roles records which semantic roles were satisfied.
	Roles classify.RoleSet
}

// Filler fills form candidates from an immutable sender profile.
type Filler struct {
	sender profile.Profile
	dial   string
	log    *zap.Logger
}

// New builds a Filler. The dial code is resolved once; an unknown country
// simply disables prefix stripping and dial-code option matching.
func New(sender profile.Profile, logger *zap.Logger) *Filler {
	dial, _ := dialcode.Lookup(sender.Country)
	return &Filler{sender: sender, dial: dial, log: logger.Named("fill")}
}

type checkItem struct {
	field page.Field
	label string
}

// Fill runs all three passes against the candidate. Per-element failures are
// logged and skipped; an error return means the frame itself could not be
// enumerated and the candidate should be abandoned.
func (f *Filler) Fill(ctx context.Context, cand discovery.Candidate) (Result, error) {
	res := Result{Roles: classify.RoleSet{}}

	// Pass 1: country/dial/prefix selects across the whole frame.
	selects, err := cand.Frame.Selects(ctx)
	if err != nil {
		return res, err
	}
	for _, sel := range selects {
		m := sel.Meta()
		if !classify.IsCountrySelect(m) {
			continue
		}
		opt, ok := classify.ResolveCountryOption(m.Options, f.sender.Country, f.dial)
		if !ok {
			continue
		}
		if err := sel.SelectValue(ctx, opt.Value); err != nil {
			f.log.Debug("country select failed", zap.String("option", opt.Text), zap.Error(err))
			continue
		}
		res.FieldsFilled++
		res.Roles[classify.RoleCountrySelect] = true
		f.log.Debug("country select resolved", zap.String("option", opt.Text))
	}

	// Pass 2: generic inputs and textareas. Checkables are deferred into
	// groups; selects were pass-1 territory.
	fields, err := cand.Frame.Fields(ctx)
	if err != nil {
		return res, err
	}

	groupOrder := make([]string, 0, 4)
	groups := make(map[string][]checkItem)

	for _, fld := range fields {
		m := fld.Meta()
		if classify.Skip(m) || strings.EqualFold(m.Tag, "select") {
			continue
		}
		if classify.IsCheckable(m) {
			key := classify.GroupKey(m)
			if _, seen := groups[key]; !seen {
				groupOrder = append(groupOrder, key)
			}
			groups[key] = append(groups[key], checkItem{field: fld, label: m.Label})
			continue
		}

		role := classify.Input(m, res.Roles)
		if role == classify.RoleUnclassified {
			continue
		}
		value := f.valueFor(role)
		if value == "" {
			continue
		}
		if err := fld.SetValue(ctx, value); err != nil {
			f.log.Debug("field fill failed", zap.Stringer("role", role), zap.Error(err))
			continue
		}
		res.FieldsFilled++
		res.Roles[role] = true
	}

	// Pass 3: checkbox groups, at most one item checked per group.
	topic := strings.ToLower(f.sender.Subject + " " + f.sender.Message)
	for _, key := range groupOrder {
		items := groups[key]
		labels := make([]string, len(items))
		for i, it := range items {
			labels[i] = it.label
		}
		idx, ok := classify.PickCheckbox(labels, topic)
		if !ok {
			continue
		}
		if err := items[idx].field.Check(ctx); err != nil {
			f.log.Debug("checkbox toggle failed", zap.String("group", key), zap.Error(err))
			continue
		}
		res.FieldsFilled++
		res.Roles[classify.RoleCheckboxTopic] = true
	}

	res.Complete = res.Roles[classify.RoleEmail] && res.Roles[classify.RoleMessage]
	f.log.Info("fill pass finished",
		zap.Int("fields_filled", res.FieldsFilled),
		zap.Bool("complete", res.Complete))
	return res, nil
}

// valueFor maps a role to the profile value that fills it.
func (f *Filler) valueFor(role classify.Role) string {
	switch role {
	case classify.RoleEmail:
		return f.sender.Email
	case classify.RoleFirstName:
		return f.sender.First()
	case classify.RoleLastName:
		return f.sender.Last()
	case classify.RoleFullName:
		return f.sender.FullName()
	case classify.RoleCompany:
		return f.sender.CompanyName
	case classify.RolePhone:
		if f.sender.Phone == "" {
			return ""
		}
		return dialcode.NormalizePhone(f.sender.Phone, f.dial)
	case classify.RoleMessage:
		return f.sender.Message
	}
	return ""
}

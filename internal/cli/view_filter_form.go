package cli

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/firmdesk/internal/domain"
	"github.com/alexanderramin/firmdesk/internal/filter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// criteriaAppliedMsg carries criteria chosen in a filter form back to the
// list view that opened it.
type criteriaAppliedMsg struct {
	target     View
	engagement *filter.EngagementCriteria
	prospect   *filter.ProspectCriteria
}

// engagementFormValues are the string-typed form fields behind the
// engagement filter form. Empty means "any".
type engagementFormValues struct {
	Search   string
	Service  string
	Partner  string
	Status   string
	Referral string
	From     string
	To       string
	LateOnly bool
}

func engagementValuesFrom(c filter.EngagementCriteria) *engagementFormValues {
	v := &engagementFormValues{
		Search:   domain.StrOrEmpty(c.Search),
		Service:  domain.StrOrEmpty(c.Service),
		Partner:  domain.StrOrEmpty(c.Partner),
		Status:   domain.StrOrEmpty(c.Status),
		Referral: domain.StrOrEmpty(c.Referral),
		LateOnly: c.LateOnly,
	}
	if c.From != nil {
		v.From = c.From.Format(dateLayout)
	}
	if c.To != nil {
		v.To = c.To.Format(dateLayout)
	}
	return v
}

// criteria converts the form into a criteria snapshot. Dates were already
// validated by the form; unparsable ones are dropped.
func (v *engagementFormValues) criteria() filter.EngagementCriteria {
	return filter.EngagementCriteria{
		Search:   domain.StrPtr(strings.TrimSpace(v.Search)),
		Service:  domain.StrPtr(v.Service),
		Partner:  domain.StrPtr(v.Partner),
		Status:   domain.StrPtr(v.Status),
		Referral: domain.StrPtr(v.Referral),
		From:     optionalDate(v.From),
		To:       optionalDate(v.To),
		LateOnly: v.LateOnly,
	}
}

func engagementFilterForm(opts filter.EngagementOptionSet, vals *engagementFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Search").Placeholder("client or business name").Value(&vals.Search),
			huh.NewSelect[string]().Title("Service").Options(selectOptions(opts.Services)...).Value(&vals.Service),
			huh.NewSelect[string]().Title("Partner").Options(selectOptions(opts.Partners)...).Value(&vals.Partner),
			huh.NewSelect[string]().Title("Status").Options(selectOptions(opts.Statuses)...).Value(&vals.Status),
			huh.NewSelect[string]().Title("Referral").Options(selectOptions(opts.Referrals)...).Value(&vals.Referral),
		),
		huh.NewGroup(
			huh.NewInput().Title("Due from").Placeholder("YYYY-MM-DD").Value(&vals.From).Validate(validateDate),
			huh.NewInput().Title("Due to").Placeholder("YYYY-MM-DD").Value(&vals.To).Validate(validateDate),
			huh.NewConfirm().Title("Late only?").Value(&vals.LateOnly),
		),
	).WithTheme(firmdeskHuhTheme()).WithShowHelp(false)
}

// prospectFormValues back the prospect filter form. Individual is "",
// "yes" or "no".
type prospectFormValues struct {
	Search     string
	Service    string
	Partner    string
	ReferredBy string
	Individual string
	MinRevenue string
}

func prospectValuesFrom(c filter.ProspectCriteria) *prospectFormValues {
	v := &prospectFormValues{
		Search:     domain.StrOrEmpty(c.Search),
		Service:    domain.StrOrEmpty(c.Service),
		Partner:    domain.StrOrEmpty(c.Partner),
		ReferredBy: domain.StrOrEmpty(c.ReferredBy),
	}
	if c.IndividualOnly != nil {
		v.Individual = "no"
		if *c.IndividualOnly {
			v.Individual = "yes"
		}
	}
	if c.MinRevenue != nil {
		v.MinRevenue = strconv.FormatFloat(*c.MinRevenue, 'f', -1, 64)
	}
	return v
}

func (v *prospectFormValues) criteria() filter.ProspectCriteria {
	c := filter.ProspectCriteria{
		Search:     domain.StrPtr(strings.TrimSpace(v.Search)),
		Service:    domain.StrPtr(v.Service),
		Partner:    domain.StrPtr(v.Partner),
		ReferredBy: domain.StrPtr(v.ReferredBy),
	}
	switch v.Individual {
	case "yes":
		b := true
		c.IndividualOnly = &b
	case "no":
		b := false
		c.IndividualOnly = &b
	}
	if f, err := strconv.ParseFloat(v.MinRevenue, 64); err == nil && f >= 0 {
		c.MinRevenue = &f
	}
	return c
}

func prospectFilterForm(opts filter.ProspectOptionSet, vals *prospectFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Search").Placeholder("client or business name").Value(&vals.Search),
			huh.NewSelect[string]().Title("Service").Options(selectOptions(opts.Services)...).Value(&vals.Service),
			huh.NewSelect[string]().Title("Partner").Options(selectOptions(opts.Partners)...).Value(&vals.Partner),
			huh.NewSelect[string]().Title("Referred by").Options(selectOptions(opts.ReferredBy)...).Value(&vals.ReferredBy),
		),
		huh.NewGroup(
			huh.NewSelect[string]().Title("Client type").Options(
				huh.NewOption(anyOption, ""),
				huh.NewOption("Individuals", "yes"),
				huh.NewOption("Businesses", "no"),
			).Value(&vals.Individual),
			huh.NewInput().Title("Minimum projected revenue").Placeholder("0").
				Value(&vals.MinRevenue).Validate(validateNonNegativeFloat),
		),
	).WithTheme(firmdeskHuhTheme()).WithShowHelp(false)
}

func applyCriteriaCmd(msg criteriaAppliedMsg) tea.Cmd {
	return func() tea.Msg { return msg }
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

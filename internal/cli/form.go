package cli

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/five82/wxsched/internal/schedule"
)

// draftAnswers receives the survey form. Field names match the question
// names.
type draftAnswers struct {
	Occurrence         string
	Weekday            string
	Hour               string
	Minute             string
	Timezone           string
	Description        string
	Command            string
	Argument           string
	UnlimitedTimeout   bool
	TimeoutMinutes     string
	PermitRoundQSO     bool
	AcceptCallsInRound bool
	ReturnToRound      bool
	ReturnToRoomID     string
}

func selectDefault(options []string, value string) any {
	for _, o := range options {
		if o == value {
			return value
		}
	}
	return nil
}

func validateZone(ans any) error {
	name, ok := ans.(string)
	if !ok {
		return errors.New("timezone must be text")
	}
	_, err := schedule.LoadZone(name)
	return err
}

// draftQuestions builds the event form, pre-filled from d.
func draftQuestions(d schedule.Draft) []*survey.Question {
	occurrences := schedule.OccurrenceNames()
	weekdays := schedule.WeekdayNames()
	commands := schedule.CommandNames()[1:]

	return []*survey.Question{
		{
			Name:   "occurrence",
			Prompt: &survey.Select{Message: "Occurs:", Options: occurrences, Default: selectDefault(occurrences, d.Occurrence)},
		},
		{
			Name:   "weekday",
			Prompt: &survey.Select{Message: "Day:", Options: weekdays, Default: selectDefault(weekdays, d.Weekday)},
		},
		{Name: "hour", Prompt: &survey.Input{Message: "Hour (00-23):", Default: d.Hour}, Validate: survey.Required},
		{Name: "minute", Prompt: &survey.Input{Message: "Minute (00-59):", Default: d.Minute}, Validate: survey.Required},
		{Name: "timezone", Prompt: &survey.Input{Message: "Timezone:", Default: d.Timezone}, Validate: validateZone},
		{Name: "description", Prompt: &survey.Input{Message: "Description:", Default: d.Description}},
		{
			Name:   "command",
			Prompt: &survey.Select{Message: "Command:", Options: commands, Default: selectDefault(commands, d.Command)},
		},
		{Name: "argument", Prompt: &survey.Input{Message: "Node or room ID:", Default: d.Argument}},
		{Name: "unlimitedtimeout", Prompt: &survey.Confirm{Message: "Unlimited timeout?", Default: d.UnlimitedTimeout}},
		{Name: "timeoutminutes", Prompt: &survey.Input{Message: "Timeout minutes (5-60):", Default: d.TimeoutMinutes}},
		{Name: "permitroundqso", Prompt: &survey.Confirm{Message: "Permit round QSO?", Default: d.PermitRoundQSO}},
		{Name: "acceptcallsinround", Prompt: &survey.Confirm{Message: "Accept calls during round QSO?", Default: d.AcceptCallsInRound}},
		{Name: "returntoround", Prompt: &survey.Confirm{Message: "Return to round QSO after disconnect?", Default: d.ReturnToRoundAfterDisconnect}},
		{Name: "returntoroomid", Prompt: &survey.Input{Message: "Return to room ID (blank for none):", Default: d.ReturnToRoomID}},
	}
}

func (a draftAnswers) draft() schedule.Draft {
	return schedule.Draft{
		Occurrence:                   a.Occurrence,
		Weekday:                      a.Weekday,
		Hour:                         a.Hour,
		Minute:                       a.Minute,
		Timezone:                     a.Timezone,
		Description:                  a.Description,
		PermitRoundQSO:               a.PermitRoundQSO,
		AcceptCallsInRound:           a.AcceptCallsInRound,
		ReturnToRoundAfterDisconnect: a.ReturnToRound,
		ReturnToRoomEnabled:          a.ReturnToRoomID != "",
		ReturnToRoomID:               a.ReturnToRoomID,
		UnlimitedTimeout:             a.UnlimitedTimeout,
		TimeoutMinutes:               a.TimeoutMinutes,
		Command:                      a.Command,
		Argument:                     a.Argument,
	}
}

func askDraft(d schedule.Draft) (schedule.Draft, error) {
	var ans draftAnswers
	if err := survey.Ask(draftQuestions(d), &ans); err != nil {
		return schedule.Draft{}, fmt.Errorf("event form: %w", err)
	}
	return ans.draft(), nil
}

func pickEvent(summaries []string) (string, error) {
	var choice string
	prompt := &survey.Select{Message: "Event to delete:", Options: summaries}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", fmt.Errorf("select event: %w", err)
	}
	return choice, nil
}

func confirm(message string) (bool, error) {
	var ok bool
	if err := survey.AskOne(&survey.Confirm{Message: message}, &ok); err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}
	return ok, nil
}

// Package intent runs the extraction or question answering a detected
// intent asks for.
package intent

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/fwojciec/docqa"
)

// KeyAnswer is the result key holding a question's answer.
const KeyAnswer = "answer"

// Result is one section of an intent's output. Extraction targets fill
// Values; the answer and full text fill Text.
type Result struct {
	Key    string
	Values []string
	Text   string
}

type entityTarget struct {
	target string
	labels []string
}

// entityTargets maps entity targets to the labels they collect, in output order.
var entityTargets = []entityTarget{
	{docqa.TargetPersons, []string{docqa.LabelPerson}},
	{docqa.TargetOrgs, []string{docqa.LabelOrg}},
	{docqa.TargetLocations, []string{docqa.LabelGPE, docqa.LabelLocation}},
	{docqa.TargetDates, []string{docqa.LabelDate}},
}

// Executor runs intents against document text.
type Executor struct {
	Entities docqa.EntityExtractor // optional; entity targets are skipped without it
	Asker    docqa.Asker
	Logger   *slog.Logger
}

// Execute runs intent against text. For question intents, text is the
// passages the answer is drawn from.
func (e *Executor) Execute(ctx context.Context, text string, intent docqa.Intent) ([]Result, error) {
	if intent.Name == docqa.IntentQA {
		if e.Asker == nil {
			return nil, docqa.Errorf(docqa.EINTERNAL, "question answering not configured")
		}
		answer, err := e.Asker.Ask(ctx, intent.Query, text)
		if err != nil {
			return nil, fmt.Errorf("answer question: %w", err)
		}
		return []Result{{Key: KeyAnswer, Text: answer}}, nil
	}

	var results []Result
	if intent.Has(docqa.TargetEmails) {
		results = append(results, Result{Key: docqa.TargetEmails, Values: unique(docqa.ExtractEmails(text))})
	}
	if intent.Has(docqa.TargetPhones) {
		results = append(results, Result{Key: docqa.TargetPhones, Values: unique(trimAll(docqa.ExtractPhoneNumbers(text)))})
	}

	entityResults, err := e.entities(ctx, text, intent)
	if err != nil {
		return nil, err
	}
	results = append(results, entityResults...)

	if intent.Has(docqa.TargetFullText) {
		results = append(results, Result{Key: docqa.TargetFullText, Text: text})
	}
	return results, nil
}

func (e *Executor) entities(ctx context.Context, text string, intent docqa.Intent) ([]Result, error) {
	wanted := slices.ContainsFunc(entityTargets, func(t entityTarget) bool {
		return intent.Has(t.target)
	})
	if !wanted {
		return nil, nil
	}
	if e.Entities == nil {
		if e.Logger != nil {
			e.Logger.Warn("entity extraction not configured, skipping entity targets", "targets", intent.Targets)
		}
		return nil, nil
	}

	ents, err := e.Entities.ExtractEntities(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	var results []Result
	for _, t := range entityTargets {
		if !intent.Has(t.target) {
			continue
		}
		var values []string
		for _, ent := range ents {
			if slices.Contains(t.labels, ent.Label) {
				values = append(values, strings.TrimSpace(ent.Text))
			}
		}
		results = append(results, Result{Key: t.target, Values: unique(values)})
	}
	return results, nil
}

func trimAll(values []string) []string {
	for i, v := range values {
		values[i] = strings.TrimSpace(v)
	}
	return values
}

// unique returns the non-empty values sorted with duplicates removed.
func unique(values []string) []string {
	out := slices.DeleteFunc(slices.Clone(values), func(v string) bool { return v == "" })
	slices.Sort(out)
	return slices.Compact(out)
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chin-tech/furangel-invoices/internal/common"
	"github.com/chin-tech/furangel-invoices/internal/match"
	"github.com/chin-tech/furangel-invoices/internal/model"
	"github.com/chin-tech/furangel-invoices/internal/reconcile"
)

const maxCandidates = 5

// Prompter implements the interactive review flow for charges whose
// animal name could not be matched against the shelter roster.
type Prompter struct {
	reader *NonBlockingReader
	writer io.Writer
}

// NewPrompter creates a prompter reading choices from reader and writing
// to writer. Nil arguments default to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// unresolvedGroup is one correction unit: every charge line for the same
// raw name on the same invoice.
type unresolvedGroup struct {
	key     reconcile.GroupKey
	charges []model.ChargeRecord
}

// ReviewUnresolved walks every unresolved charge group and collects the
// reviewer's corrections. Skipped groups stay unresolved; quitting early
// returns the corrections confirmed so far.
func (p *Prompter) ReviewUnresolved(ctx context.Context, charges []model.ChargeRecord, records []model.ShelterAnimalRecord) ([]reconcile.Correction, error) {
	groups := groupUnresolved(charges)
	if len(groups) == 0 {
		fmt.Fprintln(p.writer, FormatSuccess("All charges are resolved."))
		return nil, nil
	}

	var corrections []reconcile.Correction
	for i, group := range groups {
		select {
		case <-ctx.Done():
			return corrections, ctx.Err()
		default:
		}

		candidates := match.Candidates(group.key.RawName, group.charges[0].Date, records, maxCandidates)
		if err := p.showGroup(i+1, len(groups), group, candidates); err != nil {
			return corrections, err
		}

		correction, quit, err := p.promptGroup(ctx, group, candidates)
		if err != nil {
			return corrections, err
		}
		if correction != nil {
			corrections = append(corrections, *correction)
		}
		if quit {
			break
		}
	}
	return corrections, nil
}

func groupUnresolved(charges []model.ChargeRecord) []unresolvedGroup {
	index := make(map[reconcile.GroupKey]int)
	var groups []unresolvedGroup
	for _, rec := range charges {
		if rec.Resolution.Resolved {
			continue
		}
		key := reconcile.KeyFor(rec)
		if i, ok := index[key]; ok {
			groups[i].charges = append(groups[i].charges, rec)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, unresolvedGroup{key: key, charges: []model.ChargeRecord{rec}})
	}
	return groups
}

func (p *Prompter) showGroup(position, total int, group unresolvedGroup, candidates []model.ShelterAnimalRecord) error {
	sum := decimal.Zero
	for _, rec := range group.charges {
		sum = sum.Add(rec.Amount)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name on invoice:  %s\n", WarningStyle.Render(group.key.RawName))
	if group.key.InvoiceID != "" {
		fmt.Fprintf(&b, "Invoice:          %s\n", group.key.InvoiceID)
	}
	fmt.Fprintf(&b, "Charges:          %d lines, $%s total\n", len(group.charges), sum.StringFixed(2))
	fmt.Fprintf(&b, "First charge:     %s", SubtleStyle.Render(group.charges[0].Description))

	title := fmt.Sprintf("Unresolved Animal (%d of %d)", position, total)
	if _, err := fmt.Fprintln(p.writer, RenderBox(title, b.String())); err != nil {
		return fmt.Errorf("failed to write group box: %w", err)
	}

	if len(candidates) == 0 {
		_, err := fmt.Fprintln(p.writer, FormatWarning("No shelter records resemble this name."))
		return err
	}
	for i, c := range candidates {
		stay := fmt.Sprintf("%s to %s",
			c.Intake.Format(common.DisplayDate), c.Departure.Format(common.DisplayDate))
		if _, err := fmt.Fprintf(p.writer, "  [%d] %s (%s)  %s\n",
			i+1, c.Name, c.ShelterCode, SubtleStyle.Render(stay)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Prompter) promptGroup(ctx context.Context, group unresolvedGroup, candidates []model.ShelterAnimalRecord) (*reconcile.Correction, bool, error) {
	if _, err := fmt.Fprintln(p.writer, "  [M] Split across multiple animals"); err != nil {
		return nil, false, err
	}
	if _, err := fmt.Fprintln(p.writer, "  [E] Enter animal manually"); err != nil {
		return nil, false, err
	}
	if _, err := fmt.Fprintln(p.writer, "  [S] Skip    [Q] Quit review"); err != nil {
		return nil, false, err
	}

	for {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Choice")); err != nil {
			return nil, false, err
		}
		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			return nil, false, err
		}

		switch choice := strings.ToLower(strings.TrimSpace(line)); choice {
		case "s":
			return nil, false, nil
		case "q":
			return nil, true, nil
		case "e":
			animal, err := p.promptManualAnimal(ctx)
			if err != nil {
				return nil, false, err
			}
			return &reconcile.Correction{Key: group.key, Animals: []reconcile.ChosenAnimal{animal}}, false, nil
		case "m":
			animals, err := p.promptMultiple(ctx, candidates)
			if err != nil {
				return nil, false, err
			}
			if len(animals) == 0 {
				continue
			}
			return &reconcile.Correction{Key: group.key, Animals: animals}, false, nil
		default:
			n, err := strconv.Atoi(choice)
			if err != nil || n < 1 || n > len(candidates) {
				if _, werr := fmt.Fprintln(p.writer, FormatWarning("Invalid choice, try again.")); werr != nil {
					return nil, false, werr
				}
				continue
			}
			chosen := candidates[n-1]
			return &reconcile.Correction{
				Key:     group.key,
				Animals: []reconcile.ChosenAnimal{{Name: chosen.Name, ShelterCode: chosen.ShelterCode}},
			}, false, nil
		}
	}
}

// promptMultiple asks for the candidate numbers a shared charge covers,
// e.g. "1,3" for a two-pet visit billed on one line.
func (p *Prompter) promptMultiple(ctx context.Context, candidates []model.ShelterAnimalRecord) ([]reconcile.ChosenAnimal, error) {
	if len(candidates) == 0 {
		if _, err := fmt.Fprintln(p.writer, FormatWarning("No candidates to split across.")); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if _, err := fmt.Fprint(p.writer, FormatPrompt("Animal numbers (comma separated)")); err != nil {
		return nil, err
	}
	line, err := p.reader.ReadLine(ctx)
	if err != nil {
		return nil, err
	}

	var animals []reconcile.ChosenAnimal
	seen := make(map[int]bool)
	for _, part := range strings.Split(line, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > len(candidates) || seen[n] {
			if _, werr := fmt.Fprintln(p.writer, FormatWarning("Invalid selection.")); werr != nil {
				return nil, werr
			}
			return nil, nil
		}
		seen[n] = true
		chosen := candidates[n-1]
		animals = append(animals, reconcile.ChosenAnimal{Name: chosen.Name, ShelterCode: chosen.ShelterCode})
	}
	return animals, nil
}

func (p *Prompter) promptManualAnimal(ctx context.Context) (reconcile.ChosenAnimal, error) {
	var animal reconcile.ChosenAnimal
	for animal.Name == "" {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Animal name")); err != nil {
			return animal, err
		}
		name, err := p.reader.ReadLine(ctx)
		if err != nil {
			return animal, err
		}
		animal.Name = strings.TrimSpace(name)
	}
	for animal.ShelterCode == "" {
		if _, err := fmt.Fprint(p.writer, FormatPrompt("Shelter code")); err != nil {
			return animal, err
		}
		code, err := p.reader.ReadLine(ctx)
		if err != nil {
			return animal, err
		}
		animal.ShelterCode = strings.TrimSpace(code)
	}
	return animal, nil
}

package harness

import (
	"fmt"
	"path/filepath"

	"github.com/tetherdb/tether/docval"
	"github.com/tetherdb/tether/epoch"
	"github.com/tetherdb/tether/idgen"
	"github.com/tetherdb/tether/query"
	"github.com/tetherdb/tether/store"
)

// Run executes a scenario against a fresh database under dir and returns
// the snapshot: compact canonical JSON of every step's observable result.
// Documents appear with raw timestamps so the snapshot stays independent
// of the configured display offset.
func Run(s *Scenario, dir string) ([]byte, error) {
	clock := epoch.NewManualClock(s.Clock)

	opts := []store.Option{
		store.WithClock(clock),
		store.WithGenerator(idgen.NewFixedGenerator(s.IDs...)),
	}
	if s.DeviceID != "" {
		opts = append(opts, store.WithDeviceID(s.DeviceID))
	}

	db, err := store.Open(filepath.Join(dir, "scenario.db"), opts...)
	if err != nil {
		return nil, fmt.Errorf("open scenario database: %w", err)
	}

	var trace docval.Array
	for i, step := range s.Steps {
		entry, err := runStep(db, clock, step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		if entry != nil {
			trace = append(trace, entry)
		}
	}
	if trace == nil {
		trace = docval.Array{}
	}

	snapshot := docval.Object{
		"scenario": docval.String(s.Name),
		"trace":    trace,
	}
	return docval.Marshal(snapshot)
}

func runStep(db *store.DB, clock *epoch.ManualClock, step Step) (docval.Value, error) {
	switch {
	case step.Write != nil:
		doc, err := docval.ObjectFromGo(step.Write)
		if err != nil {
			return nil, fmt.Errorf("write step: %w", err)
		}
		if err := db.Write(doc); err != nil {
			return nil, err
		}
		return docval.Object{
			"op":        docval.String("write"),
			"documents": docval.Number(db.Len()),
		}, nil

	case step.Advance != 0:
		clock.Advance(step.Advance)
		return nil, nil

	case step.Get != "":
		doc, err := db.Get(step.Get, store.WithRawTimestamp())
		if err != nil {
			return nil, err
		}
		return docval.Object{
			"op":       docval.String("get"),
			"document": doc,
		}, nil

	case step.Filter != nil:
		preds, err := buildPredicates(step.Filter)
		if err != nil {
			return nil, err
		}
		matched := docval.Array{}
		for doc := range db.Filter(preds, store.WithRawTimestamp()) {
			matched = append(matched, doc)
		}
		return docval.Object{
			"op":      docval.String("filter"),
			"matched": matched,
		}, nil

	case step.Cleanup != 0:
		n, err := db.Cleanup(step.Cleanup)
		if err != nil {
			return nil, err
		}
		return docval.Object{
			"op":      docval.String("cleanup"),
			"deleted": docval.Number(n),
		}, nil

	case step.Delete != "":
		n, err := db.Delete(step.Delete)
		if err != nil {
			return nil, err
		}
		return docval.Object{
			"op":      docval.String("delete"),
			"deleted": docval.Number(n),
		}, nil

	case step.DeleteAll:
		n, err := db.DeleteAll()
		if err != nil {
			return nil, err
		}
		return docval.Object{
			"op":      docval.String("delete_all"),
			"deleted": docval.Number(n),
		}, nil

	case step.Len:
		return docval.Object{
			"op":        docval.String("len"),
			"documents": docval.Number(db.Len()),
		}, nil

	default:
		return nil, fmt.Errorf("empty step")
	}
}

func buildPredicates(raw map[string]any) ([]query.Predicate, error) {
	preds := make([]query.Predicate, 0, len(raw))
	for path, rawValue := range raw {
		v, err := docval.FromGo(rawValue)
		if err != nil {
			return nil, fmt.Errorf("predicate %q: %w", path, err)
		}
		p, err := query.New(path, v)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return preds, nil
}

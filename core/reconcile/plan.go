package reconcile

// BuildPlan partitions feed keys against the set of keys that already exist locally.
//
// Keys present in existing become update actions. The first occurrence of a missing key
// becomes a create action; later occurrences of the same key become update actions placed
// after it, so a key is never created twice in one run.
func BuildPlan(keys []string, existing map[string]struct{}) *Plan {
	plan := &Plan{
		Actions: make([]Action, 0, len(keys)),
	}
	plan.Summary.TotalItems = len(keys)

	var creates []Action
	seen := make(map[string]struct{}, len(keys))

	for i, key := range keys {
		_, duplicate := seen[key]
		seen[key] = struct{}{}
		if duplicate {
			plan.Summary.Duplicates++
		}

		if _, ok := existing[key]; ok {
			plan.Summary.Matched++
			plan.Actions = append(plan.Actions, Action{
				Type:   ActionUpdate,
				Key:    key,
				Index:  i,
				Reason: "matched existing entity",
			})
			continue
		}

		if duplicate {
			creates = append(creates, Action{
				Type:   ActionUpdate,
				Key:    key,
				Index:  i,
				Reason: "duplicate of an item created earlier in this run",
			})
			continue
		}

		plan.Summary.Unmatched++
		creates = append(creates, Action{
			Type:   ActionCreate,
			Key:    key,
			Index:  i,
			Reason: "no local entity with this key",
		})
	}

	plan.Actions = append(plan.Actions, creates...)
	return plan
}

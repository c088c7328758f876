package ruleset

import (
	"github.com/arthur-debert/regexmark/pkg/errors"
	"github.com/arthur-debert/regexmark/pkg/logging"
	"github.com/arthur-debert/regexmark/pkg/rules"
	"go.uber.org/multierr"
)

// Merge adds the rules of an imported bundle and, when the bundle carries a
// pattern, switches to it. Incoming rules are validated under the current
// pattern and checked for duplicates against the existing rules. Any
// failure rejects the whole bundle: the returned error aggregates every
// problem and the set is left untouched.
//
// On success Merge returns the rules disabled by the pattern change, if any.
func (s *RuleSet) Merge(bundle *SettingsData) ([]*rules.Rule, error) {
	if bundle == nil {
		return nil, nil
	}
	incoming := bundle.Rules()

	var failures error
	invalid := false
	if bundle.Pattern != nil {
		p := bundle.Pattern.Normalize()
		if codes := p.Validate(); len(codes) > 0 {
			invalid = true
			failures = multierr.Append(failures,
				errors.Newf(errors.ErrMergeInvalid, "pattern %q / %q is invalid", p.Open, p.Close).
					WithDetail("codes", codes))
		}
	}
	for i, r := range incoming {
		if codes := r.Errors(s.pattern); len(codes) > 0 {
			invalid = true
			failures = multierr.Append(failures,
				errors.Newf(errors.ErrMergeInvalid, "rule %d (class: %s, regex: %s) is invalid", i, r.Class, r.Pattern).
					WithDetail("index", i).
					WithDetail("codes", codes))
		}
	}
	if !invalid {
		for i, r := range incoming {
			for _, existing := range s.rules {
				if existing.Equal(r) {
					failures = multierr.Append(failures,
						errors.Newf(errors.ErrMergeDuplicate, "rule %d duplicates %q", i, r.Pattern).
							WithDetail("index", i))
					break
				}
			}
		}
	}

	if failures != nil {
		code := errors.ErrMergeDuplicate
		if invalid {
			code = errors.ErrMergeInvalid
		}
		return nil, errors.Wrap(failures, code, "import rejected").
			WithDetail("failures", len(multierr.Errors(failures)))
	}

	s.Add(incoming...)
	logger := logging.GetLogger("ruleset")
	logger.Info().Int("rules", len(incoming)).Msg("Merged rule bundle")

	if bundle.Pattern != nil {
		return s.ChangePattern(*bundle.Pattern)
	}
	return nil, nil
}

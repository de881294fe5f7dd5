package phone

import "github.com/nao1215/telscan/internal/model"

// Classify compares a normalized link pair with the reference numbers.
//
// References are scanned in order and the first one equal to target wins,
// even if a later one would also match. It returns the verdict, the matched
// reference and whether a reference matched at all.
//
// With no references the verdict is Unclassified. A target that matches no
// reference is a CriticalMistake regardless of the displayed text.
func Classify(displayed, target string, references []string) (model.Verdict, string, bool) {
	if len(references) == 0 {
		return model.VerdictUnclassified, "", false
	}
	for _, ref := range references {
		if target != ref {
			continue
		}
		if displayed == ref {
			return model.VerdictPass, ref, true
		}
		return model.VerdictWarning, ref, true
	}
	return model.VerdictCriticalMistake, "", false
}

// ClassifyLink classifies link against refs.
func ClassifyLink(link model.NormalizedLink, refs *model.ReferenceSet) model.ClassifiedLink {
	verdict, matched, _ := Classify(link.NormalizedDisplayed, link.NormalizedTarget, refs.Values())
	return model.NewClassifiedLink(link, verdict, matched)
}

// ClassifyAll normalizes and classifies raw links, preserving their order.
func ClassifyAll(raw []model.RawLink, refs *model.ReferenceSet) []model.ClassifiedLink {
	values := refs.Values()
	out := make([]model.ClassifiedLink, 0, len(raw))
	for _, r := range raw {
		n := NormalizeLink(r)
		verdict, matched, _ := Classify(n.NormalizedDisplayed, n.NormalizedTarget, values)
		out = append(out, model.NewClassifiedLink(n, verdict, matched))
	}
	return out
}

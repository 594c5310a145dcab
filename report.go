package tscat

// Report summarizes the translation state of one catalog.
type Report struct {
	Language   string `yaml:"language"`
	Contexts   int    `yaml:"contexts"`
	Messages   int    `yaml:"messages"`
	Finished   int    `yaml:"finished"`
	Unfinished int    `yaml:"unfinished"`
	Obsolete   int    `yaml:"obsolete"`
	Vanished   int    `yaml:"vanished"`
	Numerus    int    `yaml:"numerus"`
	// Duplicates are repeated keys among entries that are not retired.
	Duplicates []Key `yaml:"-"`
}

// Live is the number of messages still referenced by the application.
func (r Report) Live() int {
	return r.Finished + r.Unfinished
}

// Completion is the finished share of live messages, 1 for an empty catalog.
func (r Report) Completion() float64 {
	if r.Live() == 0 {
		return 1
	}
	return float64(r.Finished) / float64(r.Live())
}

func Summarize(c *Catalog) Report {
	report := Report{}
	if c == nil {
		return report
	}
	report.Language = c.Language
	report.Contexts = len(c.Contexts)

	seen := map[Key]int{}
	for _, ctx := range c.Contexts {
		for _, msg := range ctx.Messages {
			report.Messages++
			if msg.Numerus {
				report.Numerus++
			}
			switch msg.Translation.Type {
			case TypeUnfinished:
				report.Unfinished++
			case TypeObsolete:
				report.Obsolete++
				continue
			case TypeVanished:
				report.Vanished++
				continue
			default:
				if hasText(msg.Translation) {
					report.Finished++
				} else {
					// a finished entry without text renders the source
					report.Unfinished++
				}
			}
			key := msg.Key(ctx.Name)
			seen[key]++
			if seen[key] == 2 {
				report.Duplicates = append(report.Duplicates, key)
			}
		}
	}
	return report
}

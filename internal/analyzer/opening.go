package analyzer

// Opening is a single job vacancy returned by the analysis service.
type Opening struct {
	ID    string `json:"id,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

type Openings struct {
	Items []*Opening
}

func (o *Openings) Len() int {
	return len(o.Items)
}

func (o *Openings) Titles() []string {
	titles := make([]string, 0, len(o.Items))

	for _, opening := range o.Items {
		titles = append(titles, opening.Title)
	}

	return titles
}

func (o *Openings) FindByTitle(title string) *Opening {
	for _, opening := range o.Items {
		if opening.Title == title {
			return opening
		}
	}

	return nil
}

func (o *Openings) FindByID(id string) *Opening {
	for _, opening := range o.Items {
		if opening.ID == id {
			return opening
		}
	}

	return nil
}

// Dedupe removes openings with an already seen id, keeping the first
// occurrence. Order is preserved.
func (o *Openings) Dedupe() []string {
	seen := make(map[string]struct{}, len(o.Items))
	kept := make([]*Opening, 0, len(o.Items))
	var dropped []string

	for _, opening := range o.Items {
		if _, ok := seen[opening.ID]; ok {
			dropped = append(dropped, opening.ID)
			continue
		}
		seen[opening.ID] = struct{}{}
		kept = append(kept, opening)
	}

	o.Items = kept

	return dropped
}

// Truncate caps the list at n openings. Order is preserved.
func (o *Openings) Truncate(n int) []string {
	if n <= 0 || len(o.Items) <= n {
		return nil
	}

	var dropped []string
	for _, opening := range o.Items[n:] {
		dropped = append(dropped, opening.ID)
	}

	o.Items = o.Items[:n]

	return dropped
}

package entity

// CardPatch is a partial update. Nil fields are left untouched. Clearing a
// nullable field is expressed explicitly since nil already means "no change".
type CardPatch struct {
	Text                     *string
	X                        *float64
	Y                        *float64
	Width                    *float64
	Height                   *float64
	GroupId                  *string
	ClearGroup               bool
	IsChallenge              *bool
	SolutionPerspective      *string
	ClearSolutionPerspective bool
	PerspectiveRaw           *string
	TypeRaw                  *string
	Reasoning                *string
}

// ApplyTo merges the patch into a card in place. UpdatedAt is the
// repository's responsibility, not the patch's.
func (p CardPatch) ApplyTo(c *Card) {
	if p.Text != nil {
		c.Text = *p.Text
	}
	if p.X != nil {
		c.X = *p.X
	}
	if p.Y != nil {
		c.Y = *p.Y
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.ClearGroup {
		c.GroupId = nil
	} else if p.GroupId != nil {
		v := *p.GroupId
		c.GroupId = &v
	}
	if p.IsChallenge != nil {
		c.IsChallenge = *p.IsChallenge
	}
	if p.ClearSolutionPerspective {
		c.SolutionPerspective = nil
	} else if p.SolutionPerspective != nil {
		v := *p.SolutionPerspective
		c.SolutionPerspective = &v
	}
	if p.PerspectiveRaw != nil {
		c.PerspectiveRaw = *p.PerspectiveRaw
	}
	if p.TypeRaw != nil {
		c.TypeRaw = *p.TypeRaw
	}
	if p.Reasoning != nil {
		c.Reasoning = *p.Reasoning
	}
}

// GroupPatch is the group counterpart of CardPatch.
type GroupPatch struct {
	Title            *string
	X                *float64
	Y                *float64
	Width            *float64
	Height           *float64
	Color            *string
	IsChallengeGroup *bool
}

func (p GroupPatch) ApplyTo(g *Group) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.X != nil {
		g.X = *p.X
	}
	if p.Y != nil {
		g.Y = *p.Y
	}
	if p.Width != nil {
		g.Width = *p.Width
	}
	if p.Height != nil {
		g.Height = *p.Height
	}
	if p.Color != nil {
		g.Color = *p.Color
	}
	if p.IsChallengeGroup != nil {
		g.IsChallengeGroup = *p.IsChallengeGroup
	}
}

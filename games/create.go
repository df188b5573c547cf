/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

// CreateForm is the state behind the create-game dialog.
type CreateForm struct {
	Code   string
	Copied bool
}

func NewCreateForm() CreateForm {
	return CreateForm{Code: DefaultInviteCode}
}

// regenerateDraws caps how many times Regenerate asks for a code that
// differs from the one on screen.
const regenerateDraws = 8

// Regenerate replaces the displayed code with a fresh one from next,
// drawing again while it matches what was shown. After regenerateDraws
// attempts the last draw is kept even if it repeats.
func (f *CreateForm) Regenerate(next func() string) {
	code := next()
	for i := 1; i < regenerateDraws && code == f.Code; i++ {
		code = next()
	}

	f.Code = code
	f.Copied = false
}

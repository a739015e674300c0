package entryservice

import (
	"github.com/quillhq/quill/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.CheckStringLength(title, 1, 200), "title", "must be between 1 and 200 characters long")
}

func validateContent(v *common.Validator, content string) {
	v.Check(content != "", "content", "must be provided")
}

func validateSlug(v *common.Validator, slug string) {
	v.Check(slug != "", "slug", "must not be empty")
	v.Check(slug == "" || SlugRX.MatchString(slug), "slug", "must only contain lowercase letters, digits, underscores, and single hyphen separators")
}

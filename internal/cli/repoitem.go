package cli

import (
	"fmt"

	"github.com/repogroom/repogroom/internal/model"
)

type repoItem struct {
	repo model.Repository
}

func (i repoItem) Title() string {
	lock := ""
	if i.repo.Private {
		lock = "🔒 "
	}

	return fmt.Sprintf("%s%s", lock, i.repo.FullName)
}

func (i repoItem) Description() string {
	desc := i.repo.Description
	if desc == "" {
		desc = "no description"
	}

	lang := i.repo.Language
	if lang == "" {
		lang = "unknown"
	}

	desc = fmt.Sprintf("%s | %s | ★ %d", desc, lang, i.repo.Stars)

	if !i.repo.UpdatedAt.IsZero() {
		desc = fmt.Sprintf("%s | Updated: %s", desc, i.repo.UpdatedAt.Format("2006-01-02"))
	}

	return desc
}

func (i repoItem) FilterValue() string {
	return i.repo.FullName
}

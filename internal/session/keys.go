package session

import "strings"

// BackFlag names a one-shot "returning to this page" flag.
type BackFlag string

const (
	BackToHome       BackFlag = "isBackToHome"
	BackToDrama      BackFlag = "isBackToDrama"
	BackToTvfilm     BackFlag = "isBackToTvfilm"
	BackToMusic      BackFlag = "isBackToMusic"
	BackToCeleb      BackFlag = "isBackToCeleb"
	BackToRanking    BackFlag = "isBackToRanking"
	BackToNewsDetail BackFlag = "isBackToNewsDetail"
)

const (
	logoClickedKey = "logoClicked"
	flagValue      = "true"
)

// SectionKey returns the ScrollRecord key of a top-level section,
// e.g. "drama" -> "dramaScrollPosition".
func SectionKey(section string) string {
	return section + "ScrollPosition"
}

// DetailKey returns the per-item ScrollRecord key, e.g. ("newsScroll", "bts-comeback")
// -> "newsScroll_bts-comeback".
func DetailKey(prefix, itemID string) string {
	return prefix + "_" + itemID
}

// BackFlagFor returns the conventional back flag of a section:
// "tvfilm" -> "isBackToTvfilm".
func BackFlagFor(section string) BackFlag {
	if section == "" {
		return ""
	}
	return BackFlag("isBackTo" + strings.ToUpper(section[:1]) + section[1:])
}

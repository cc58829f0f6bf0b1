package domain

import (
	"fmt"
	"math"
	"strings"
)

// tier is one band of a template bank. A score selects the first tier whose
// min it reaches; banks are ordered by descending min and end at -Inf.
type tier struct {
	min      float64
	sentence string
}

var (
	solarTiers = []tier{
		{85, "일사량이 매우 우수하여 태양광 발전 효율이 높습니다"},
		{70, "일사량이 양호한 편입니다"},
		{math.Inf(-1), "일사량이 다소 부족한 편입니다"},
	}
	gridTiers = []tier{
		{80, "선로 여유 용량이 충분하여 계통 연계가 원활합니다"},
		{60, "선로 용량은 보통 수준이며, 일부 대기 시간이 발생할 수 있습니다"},
		{math.Inf(-1), "선로 용량이 부족하여 계통 연계 대기 시간이 길 수 있습니다"},
	}
	densityTiers = []tier{
		{80, "설비 밀집도가 낮아 신규 설치에 유리합니다"},
		{60, "설비 밀집도는 보통 수준입니다"},
		{math.Inf(-1), "이미 많은 설비가 설치되어 있어 경쟁이 치열할 수 있습니다"},
	}
	subsidyTiers = []tier{
		{80, "지자체 보조금 지원이 우수합니다"},
		{math.Inf(-1), "보조금 지원은 평균 수준입니다"},
	}
)

func pick(tiers []tier, score float64) string {
	for _, t := range tiers {
		if score >= t.min {
			return t.sentence
		}
	}
	// NaN never reaches a tier; report it with the lowest band.
	return tiers[len(tiers)-1].sentence
}

// Summarize builds the narrative summary for a region: one sentence per
// indicator, joined with ". " and ending with a period.
func Summarize(regionName string, s Scores) string {
	sentences := []string{
		fmt.Sprintf("%s%s %s", regionName, topicParticle(regionName), pick(solarTiers, s.Solar)),
		pick(gridTiers, s.Grid),
		pick(densityTiers, s.Density),
		pick(subsidyTiers, s.Subsidy),
	}
	return strings.Join(sentences, ". ") + "."
}

// topicParticle returns 은 after a final consonant and 는 otherwise. Names
// not ending in a Hangul syllable get the combined form.
func topicParticle(name string) string {
	runes := []rune(name)
	if len(runes) == 0 {
		return "은(는)"
	}
	last := runes[len(runes)-1]
	if last < 0xAC00 || last > 0xD7A3 {
		return "은(는)"
	}
	if (last-0xAC00)%28 != 0 {
		return "은"
	}
	return "는"
}

package model

import "strings"

// stopwords 是英文停用词表，构建文档向量前过滤。
var stopwords = buildStopwords(
	"a about above after again against all am an and any are as at be because",
	"been before being below between both but by can cannot could did do does",
	"doing down during each few for from further had has have having he her",
	"here hers herself him himself his how i if in into is it its itself just",
	"me more most my myself no nor not now of off on once only or other our",
	"ours ourselves out over own same she should so some such than that the",
	"their theirs them themselves then there these they this those through to",
	"too under until up very was we were what when where which while who whom",
	"why will with would you your yours yourself yourselves",
	"also among amongst anyhow anyone anything anywhere around back became",
	"become becomes becoming beside besides beyond bottom call con could",
	"describe detail done due during eight eleven else elsewhere empty enough",
	"even ever every everyone everything everywhere except fifteen fifty fill",
	"find fire first five former formerly forty found four front full get give",
	"go hence hereafter hereby herein hereupon however hundred inc indeed",
	"interest keep last latter latterly least less ltd made many may meanwhile",
	"might mill mine moreover mostly move much must name namely neither never",
	"nevertheless next nine nobody none noone nothing nowhere often one onto",
	"others otherwise part per perhaps please put rather re seem seemed",
	"seeming seems serious several show side since sincere six sixty somehow",
	"someone something sometime sometimes somewhere still take ten therefore",
	"thereafter thereby therein thereupon thick thin third three throughout",
	"thru thus together top toward towards twelve twenty two upon us via well",
	"whatever whence whenever whereafter whereas whereby wherein whereupon",
	"wherever whether whither whoever whole whose within without yet",
)

func buildStopwords(lines ...string) map[string]bool {
	set := make(map[string]bool, 512)
	for _, line := range lines {
		for _, w := range strings.Fields(line) {
			set[w] = true
		}
	}
	return set
}

// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

package content

import "strings"

// categoryKinds maps interest categories, in English and Chinese, onto the
// content kinds they select.
var categoryKinds = map[string][]Kind{
	"about":     {KindAbout},
	"company":   {KindAbout},
	"关于":        {KindAbout},
	"品牌":        {KindAbout, KindProduct},
	"stores":    {KindStore},
	"store":     {KindStore},
	"门店":        {KindStore},
	"products":  {KindProduct},
	"product":   {KindProduct},
	"产品":        {KindProduct},
	"franchise": {KindFranchise, KindStore},
	"加盟":        {KindFranchise, KindStore},
	"training":  {KindTraining},
	"培训":        {KindTraining},
	"news":      {KindArticle},
	"资讯":        {KindArticle},
	"contact":   {KindContactAction},
	"联系":        {KindContactAction},
}

// CategoryMatches reports whether an interest category selects kind k.
func CategoryMatches(category string, k Kind) bool {
	for _, candidate := range categoryKinds[strings.ToLower(strings.TrimSpace(category))] {
		if candidate == k {
			return true
		}
	}
	return false
}

// clickKeywords are the click-target fragments that count as relevant prior
// interactions for each kind.
var clickKeywords = map[Kind][]string{
	KindStore:         {"store", "map", "navigate", "门店", "导航", "地址"},
	KindProduct:       {"product", "buy", "price", "产品", "购买", "价格"},
	KindTraining:      {"training", "course", "enroll", "培训", "课程", "报名"},
	KindFranchise:     {"franchise", "apply", "join", "加盟", "申请"},
	KindAbout:         {"about", "story", "company", "关于", "品牌"},
	KindArticle:       {"news", "article", "read", "资讯", "文章"},
	KindContactAction: {"contact", "call", "chat", "联系", "电话", "咨询"},
}

// IsRelevantClick reports whether a click target matches k's keyword list.
func IsRelevantClick(target string, k Kind) bool {
	t := strings.ToLower(target)
	for _, kw := range clickKeywords[k] {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// canonicalCategories folds category aliases onto the names used by the
// journey table and the recommendation strategies.
var canonicalCategories = map[string]string{
	"about": "about", "company": "about", "关于": "about", "品牌": "about",
	"stores": "stores", "store": "stores", "门店": "stores",
	"products": "products", "product": "products", "产品": "products",
	"franchise": "franchise", "加盟": "franchise",
	"training": "training", "培训": "training",
	"news": "news", "资讯": "news",
	"contact": "contact", "联系": "contact",
}

// CanonicalCategory returns the canonical name for an interest category, or
// the trimmed lower-cased input when it has no alias.
func CanonicalCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if canon, ok := canonicalCategories[c]; ok {
		return canon
	}
	return c
}

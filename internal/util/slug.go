package util

import "strings"

// TopicSlug 主题名归一化：小写，连续非字母数字折叠为单个下划线，去掉首尾下划线。
// 技能账本以 (userId, topicSlug) 为键，归一化必须稳定。
func TopicSlug(topic string) string {
	var b strings.Builder
	b.Grow(len(topic))

	lastUnderscore := true // 抑制开头下划线
	for _, r := range strings.ToLower(topic) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if alnum {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	return strings.TrimSuffix(b.String(), "_")
}

package session

import (
	"encoding/json"
	"sort"
	"strings"
)

// ==================== 行式文本 ⇄ 映射 编解码 ====================
// 商品映射和标签映射在 UI 里是多行文本，保存时解析为结构化映射。
// 这是有损格式：没有可用分隔符或键为空的行被静默丢弃。

// GoodsEntry 一行商品映射，保留行顺序
type GoodsEntry struct {
	Name    string
	GoodsId string
}

// goodsSeparators 按优先级尝试的分隔符
var goodsSeparators = []string{"=", ":", "："}

// ParseGoodsMap 解析 "产品名=商品ID" 多行文本
// 整段文本也可以直接是一个 JSON 对象（备用编码）
func ParseGoodsMap(text string) []GoodsEntry {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "{") && strings.HasSuffix(raw, "}") {
		var m map[string]string
		if err := json.Unmarshal([]byte(raw), &m); err == nil {
			return goodsEntriesFromMap(m)
		}
		return nil
	}
	var entries []GoodsEntry
	for _, line := range splitLines(raw) {
		name, goodsId, ok := splitGoodsLine(line)
		if !ok {
			continue
		}
		entries = append(entries, GoodsEntry{Name: name, GoodsId: goodsId})
	}
	return entries
}

// splitGoodsLine 第一个命中的分隔符生效
func splitGoodsLine(line string) (string, string, bool) {
	for _, sep := range goodsSeparators {
		idx := strings.Index(line, sep)
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[:idx])
		goodsId := strings.TrimSpace(line[idx+len(sep):])
		if name == "" || goodsId == "" {
			return "", "", false
		}
		return name, goodsId, true
	}
	return "", "", false
}

// FormatGoodsMap 渲染为多行 "产品名=商品ID" 文本
func FormatGoodsMap(entries []GoodsEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Name+"="+e.GoodsId)
	}
	return strings.Join(lines, "\n")
}

// GoodsEntriesToMap 转为配置文档里的映射
func GoodsEntriesToMap(entries []GoodsEntry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.Name] = e.GoodsId
	}
	return m
}

// goodsEntriesFromMap 从映射还原条目；映射无序，按名称排序保证稳定
func goodsEntriesFromMap(m map[string]string) []GoodsEntry {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]GoodsEntry, 0, len(m))
	for _, name := range names {
		entries = append(entries, GoodsEntry{Name: name, GoodsId: m[name]})
	}
	return entries
}

// TagEntry 一行标签映射
type TagEntry struct {
	Name string
	Tags []string
}

// ParseTagMap 解析 "产品名=tag1,tag2" 多行文本
// 标签按半角/全角逗号切分，去空白并剥掉开头的 #
func ParseTagMap(text string) []TagEntry {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return nil
	}
	var entries []TagEntry
	for _, line := range splitLines(raw) {
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		name := strings.TrimSpace(line[:idx])
		if name == "" {
			continue
		}
		tags := SplitTags(line[idx+1:])
		if len(tags) == 0 {
			continue
		}
		entries = append(entries, TagEntry{Name: name, Tags: tags})
	}
	return entries
}

// SplitTags 切分并清洗一段标签文本
func SplitTags(text string) []string {
	text = strings.ReplaceAll(text, "，", ",")
	var tags []string
	for _, part := range strings.Split(text, ",") {
		tag := strings.TrimPrefix(strings.TrimSpace(part), "#")
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// FormatTagMap 渲染为多行 "产品名=tag1,tag2" 文本
func FormatTagMap(entries []TagEntry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Name+"="+strings.Join(e.Tags, ","))
	}
	return strings.Join(lines, "\n")
}

// TagEntriesToMap 转为配置文档里的映射
func TagEntriesToMap(entries []TagEntry) map[string][]string {
	m := make(map[string][]string, len(entries))
	for _, e := range entries {
		m[e.Name] = e.Tags
	}
	return m
}

// tagEntriesFromMap 从映射还原条目，按名称排序
func tagEntriesFromMap(m map[string][]string) []TagEntry {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	entries := make([]TagEntry, 0, len(m))
	for _, name := range names {
		entries = append(entries, TagEntry{Name: name, Tags: m[name]})
	}
	return entries
}

func splitLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

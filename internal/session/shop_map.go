package session

// ShopMapEditor 按店铺维护"商品映射 / 标题标签"两块可编辑文本
// 切换店铺选择器时，先把上一个店铺的在编文本提交回它的槽位
// 再切换，保证没有显式保存也不会丢编辑
type ShopMapEditor struct {
	goodsByShop map[string]map[string]string
	tagsByShop  map[string]map[string][]string

	activeShop string
	goodsText  string
	tagsText   string
}

// NewShopMapEditor 从配置文档里的按店铺映射初始化
func NewShopMapEditor(goodsByShop map[string]map[string]string, tagsByShop map[string]map[string][]string, activeShop string) *ShopMapEditor {
	e := &ShopMapEditor{
		goodsByShop: map[string]map[string]string{},
		tagsByShop:  map[string]map[string][]string{},
	}
	for shop, m := range goodsByShop {
		e.goodsByShop[shop] = m
	}
	for shop, m := range tagsByShop {
		e.tagsByShop[shop] = m
	}
	e.activeShop = activeShop
	e.renderActive()
	return e
}

// renderActive 把当前店铺槽位渲染为可编辑文本
func (e *ShopMapEditor) renderActive() {
	e.goodsText = FormatGoodsMap(goodsEntriesFromMap(e.goodsByShop[e.activeShop]))
	e.tagsText = FormatTagMap(tagEntriesFromMap(e.tagsByShop[e.activeShop]))
}

// ActiveShop 当前选中的店铺
func (e *ShopMapEditor) ActiveShop() string { return e.activeShop }

// GoodsText 当前在编的商品映射文本
func (e *ShopMapEditor) GoodsText() string { return e.goodsText }

// TagsText 当前在编的标签映射文本
func (e *ShopMapEditor) TagsText() string { return e.tagsText }

// EditGoodsText 操作者编辑商品映射文本
func (e *ShopMapEditor) EditGoodsText(text string) { e.goodsText = text }

// EditTagsText 操作者编辑标签映射文本
func (e *ShopMapEditor) EditTagsText(text string) { e.tagsText = text }

// commitActive 把在编文本解析回当前店铺的槽位
func (e *ShopMapEditor) commitActive() {
	if e.activeShop == "" {
		return
	}
	e.goodsByShop[e.activeShop] = GoodsEntriesToMap(ParseGoodsMap(e.goodsText))
	e.tagsByShop[e.activeShop] = TagEntriesToMap(ParseTagMap(e.tagsText))
}

// SwitchShop 切换店铺：先提交当前编辑，再加载目标店铺
func (e *ShopMapEditor) SwitchShop(next string) {
	if next == e.activeShop {
		return
	}
	e.commitActive()
	e.activeShop = next
	e.renderActive()
}

// Commit 保存前调用：提交当前编辑并返回两份按店铺映射
func (e *ShopMapEditor) Commit() (map[string]map[string]string, map[string]map[string][]string) {
	e.commitActive()
	return e.goodsByShop, e.tagsByShop
}

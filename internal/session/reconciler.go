// Package session 承载单个 UI 会话的表单状态
// 后台轮询会周期性送来服务端权威值，这里决定逐字段是否覆盖：
// 脏字段（有未保存的编辑）和焦点字段永远不被覆盖。
package session

// FormSession 一个 UI 会话的表单状态
// 每个会话持有独立实例，不使用任何包级可变状态
type FormSession struct {
	values  map[string]string
	dirty   map[string]struct{}
	focused string
}

// NewFormSession 创建空表单会话
func NewFormSession() *FormSession {
	return &FormSession{
		values: map[string]string{},
		dirty:  map[string]struct{}{},
	}
}

// Value 读取字段当前值
func (f *FormSession) Value(id string) string {
	return f.values[id]
}

// Edit 操作者输入：写入值并标脏
// 字段保持脏直到一次覆盖该字段的保存成功
func (f *FormSession) Edit(id, value string) {
	f.values[id] = value
	f.dirty[id] = struct{}{}
}

// Focus 字段获得输入焦点
func (f *FormSession) Focus(id string) {
	f.focused = id
}

// Blur 字段失去焦点
func (f *FormSession) Blur(id string) {
	if f.focused == id {
		f.focused = ""
	}
}

// IsDirty 字段是否有未保存的编辑
func (f *FormSession) IsDirty(id string) bool {
	_, ok := f.dirty[id]
	return ok
}

// shouldOverwrite 后台刷新是否允许覆盖该字段
func (f *FormSession) shouldOverwrite(id string) bool {
	return !f.IsDirty(id) && f.focused != id
}

// Apply 合并一轮服务端权威值
// 对每个字段独立判定；重复应用同一份数据是幂等的
func (f *FormSession) Apply(server map[string]string) {
	for id, v := range server {
		if f.shouldOverwrite(id) {
			f.values[id] = v
		}
	}
}

// CommitSaved 保存成功后清除所覆盖字段的脏标记
func (f *FormSession) CommitSaved(ids ...string) {
	for _, id := range ids {
		delete(f.dirty, id)
	}
}

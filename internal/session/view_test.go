package session

import (
	"fmt"
	"testing"

	"pdd_helper_v1/internal/model"
)

func makeTasks(n int, date string) []model.UploadTask {
	tasks := make([]model.UploadTask, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, model.UploadTask{
			Id:   fmt.Sprintf("t%02d", i),
			Date: date,
		})
	}
	return tasks
}

func TestPageTasksTodayFilter(t *testing.T) {
	tasks := append(makeTasks(3, "20260829"), makeTasks(2, "20260828")...)
	// 无日期的旧记录保留
	tasks = append(tasks, model.UploadTask{Id: "legacy"})

	page := PageTasks(tasks, "20260829", 1)
	if len(page.Items) != 4 {
		t.Fatalf("今日过滤结果不符: %d 条", len(page.Items))
	}
}

func TestPageTasksReverseOrder(t *testing.T) {
	page := PageTasks(makeTasks(5, "20260829"), "20260829", 1)
	if page.Items[0].Id != "t04" || page.Items[4].Id != "t00" {
		t.Fatalf("应倒序排列: %+v", page.Items)
	}
}

func TestPageTasksPagination(t *testing.T) {
	tasks := makeTasks(TaskPageSize*2+3, "20260829")

	first := PageTasks(tasks, "20260829", 1)
	if len(first.Items) != TaskPageSize || first.TotalPages != 3 {
		t.Fatalf("第一页不符: %d 条 / %d 页", len(first.Items), first.TotalPages)
	}
	last := PageTasks(tasks, "20260829", 3)
	if len(last.Items) != 3 {
		t.Fatalf("末页不符: %d 条", len(last.Items))
	}
	// 越界页码钳制到合法范围
	clamped := PageTasks(tasks, "20260829", 99)
	if clamped.Page != 3 {
		t.Fatalf("页码应钳制到末页: %d", clamped.Page)
	}
	if PageTasks(tasks, "20260829", -1).Page != 1 {
		t.Fatalf("负页码应钳制到第一页")
	}
}

func TestPageTasksEmpty(t *testing.T) {
	page := PageTasks(nil, "20260829", 1)
	if len(page.Items) != 0 || page.TotalPages != 1 || page.Page != 1 {
		t.Fatalf("空任务表应返回第 1/1 页: %+v", page)
	}
}

func TestFilterLogsByDay(t *testing.T) {
	logs := []model.OpLog{
		{Ts: "2026-08-28 10:00:00", Message: "a"},
		{Ts: "2026-08-29 09:00:00", Message: "b"},
	}
	got := FilterLogsByDay(logs, "2026-08-29")
	if len(got) != 1 || got[0].Message != "b" {
		t.Fatalf("日期过滤不符: %+v", got)
	}
	if len(FilterLogsByDay(logs, "")) != 2 {
		t.Fatalf("空日期应返回全部")
	}
}

func TestBaiduIndicator(t *testing.T) {
	yes, no := true, false
	cases := []struct {
		st    *model.BaiduStatus
		ind   Indicator
		label string
	}{
		{nil, IndicatorBad, "异常"},
		{&model.BaiduStatus{Available: false}, IndicatorBad, "不可用"},
		{&model.BaiduStatus{Available: true}, IndicatorUnknown, "未检查"},
		{&model.BaiduStatus{Available: true, LoggedIn: &yes}, IndicatorOK, "已登录"},
		{&model.BaiduStatus{Available: true, LoggedIn: &no}, IndicatorBad, "未登录"},
	}
	for i, tc := range cases {
		ind, label := BaiduIndicator(tc.st)
		if ind != tc.ind || label != tc.label {
			t.Fatalf("用例 %d 不符: %v %q", i, ind, label)
		}
	}
}

func TestTaskBadge(t *testing.T) {
	if cls, label := TaskBadge(model.TaskStatusDone); cls != "badge success" || label != "成功" {
		t.Fatalf("done 徽标不符: %q %q", cls, label)
	}
	if _, label := TaskBadge("奇怪状态"); label != "奇怪状态" {
		t.Fatalf("未知状态应原样显示: %q", label)
	}
}

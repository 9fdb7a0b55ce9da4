package service

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"pdd_helper_v1/internal/model"
)

// writeFakeCli 生成一个假的 CLI 脚本
func writeFakeCli(t *testing.T, script string) string {
	if runtime.GOOS == "windows" {
		t.Skip("脚本型假 CLI 只在类 Unix 上运行")
	}
	path := filepath.Join(t.TempDir(), "BaiduPCS-Go")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("写入假 CLI 失败: %v", err)
	}
	return path
}

// collectEvents 读空事件通道
func collectEvents(t *testing.T, ch <-chan model.LoginEvent) []model.LoginEvent {
	var events []model.LoginEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return events
			}
			events = append(events, ev)
		case <-timeout:
			t.Fatalf("等待事件超时，已收到: %+v", events)
		}
	}
}

func TestStartLoginMissingBduss(t *testing.T) {
	sup := NewLoginSupervisor(newTestOpLog(t))
	events := collectEvents(t, sup.StartLogin("", "", ""))
	if len(events) != 1 || events[0].Type != model.LoginEventError {
		t.Fatalf("缺 BDUSS 应只有一条 error 事件: %+v", events)
	}
	if sup.Active() {
		t.Fatalf("校验失败不应产生会话")
	}
}

func TestStartLoginExecutableNotFound(t *testing.T) {
	sup := NewLoginSupervisor(newTestOpLog(t))
	// 探测目录指向空目录，PATH 里也不会有
	sup.bundleDirs = []string{t.TempDir()}
	t.Setenv("PATH", t.TempDir())

	events := collectEvents(t, sup.StartLogin("/不存在/BaiduPCS-Go", "bduss-1", ""))
	if len(events) != 1 || events[0].Type != model.LoginEventError {
		t.Fatalf("找不到可执行文件应只有一条 error 事件: %+v", events)
	}
}

func TestResolveExecutableOrder(t *testing.T) {
	sup := NewLoginSupervisor(newTestOpLog(t))
	cli := writeFakeCli(t, "exit 0")

	// 操作者指定路径优先
	got, err := sup.ResolveExecutable(cli)
	if err != nil || got != cli {
		t.Fatalf("应优先使用指定路径: %q %v", got, err)
	}

	// 指定路径不存在时回退到探测目录
	sup.bundleDirs = []string{filepath.Dir(cli)}
	got, err = sup.ResolveExecutable("/不存在/cli")
	if err != nil || got != cli {
		t.Fatalf("应回退到探测目录: %q %v", got, err)
	}

	// 都没有时报 ExecutableNotFoundError
	sup.bundleDirs = []string{t.TempDir()}
	t.Setenv("PATH", t.TempDir())
	_, err = sup.ResolveExecutable("")
	var notFound *ExecutableNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("应返回 ExecutableNotFoundError: %v", err)
	}
}

func TestStartLoginEventOrder(t *testing.T) {
	sup := NewLoginSupervisor(newTestOpLog(t))
	cli := writeFakeCli(t, "echo 第一行\necho 第二行\nexit 0")

	events := collectEvents(t, sup.StartLogin(cli, "bduss-1", "stoken-1"))
	if len(events) < 2 {
		t.Fatalf("事件太少: %+v", events)
	}
	if events[0].Type != model.LoginEventStart {
		t.Fatalf("首事件应为 start: %+v", events[0])
	}
	last := events[len(events)-1]
	if last.Type != model.LoginEventEnd || last.Code == nil || *last.Code != 0 {
		t.Fatalf("末事件应为 end(0): %+v", last)
	}
	var lines []string
	for _, ev := range events[1 : len(events)-1] {
		if ev.Type != model.LoginEventLine {
			t.Fatalf("中间事件应为 line: %+v", ev)
		}
		lines = append(lines, ev.Message)
	}
	if len(lines) != 2 {
		t.Fatalf("应收到两行输出: %+v", lines)
	}

	if sup.Active() {
		t.Fatalf("进程退出后会话应清除")
	}
}

func TestStartLoginNonZeroExit(t *testing.T) {
	sup := NewLoginSupervisor(newTestOpLog(t))
	cli := writeFakeCli(t, "echo 失败 >&2\nexit 3")

	events := collectEvents(t, sup.StartLogin(cli, "bduss-1", ""))
	last := events[len(events)-1]
	if last.Type != model.LoginEventEnd || last.Code == nil || *last.Code != 3 {
		t.Fatalf("退出码应透传: %+v", last)
	}
}

func TestStartLoginSingleFlight(t *testing.T) {
	sup := NewLoginSupervisor(newTestOpLog(t))
	slow := writeFakeCli(t, "exec sleep 30")
	fast := writeFakeCli(t, "exit 0")

	first := sup.StartLogin(slow, "bduss-1", "")
	// 等首个子进程跑起来
	deadline := time.Now().Add(2 * time.Second)
	for !sup.Active() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	second := sup.StartLogin(fast, "bduss-2", "")

	// 旧会话被终止，通道以 end 事件收尾后关闭
	firstEvents := collectEvents(t, first)
	if len(firstEvents) == 0 || !firstEvents[len(firstEvents)-1].Terminal() {
		t.Fatalf("旧会话应以终止事件收尾: %+v", firstEvents)
	}

	secondEvents := collectEvents(t, second)
	last := secondEvents[len(secondEvents)-1]
	if last.Type != model.LoginEventEnd || *last.Code != 0 {
		t.Fatalf("新会话应正常结束: %+v", secondEvents)
	}
}

func TestStopLoginIdempotent(t *testing.T) {
	sup := NewLoginSupervisor(newTestOpLog(t))
	// 没有会话时是空操作
	sup.StopLogin()
	sup.StopLogin()

	cli := writeFakeCli(t, "exec sleep 30")
	events := sup.StartLogin(cli, "bduss-1", "")
	deadline := time.Now().Add(2 * time.Second)
	for !sup.Active() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}

	sup.StopLogin()
	sup.StopLogin()

	got := collectEvents(t, events)
	if len(got) == 0 || !got[len(got)-1].Terminal() {
		t.Fatalf("终止后应收到终止事件: %+v", got)
	}
}

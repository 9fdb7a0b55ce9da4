package service

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"

	"github.com/google/uuid"

	"pdd_helper_v1/internal/model"
)

// cliName 网盘 CLI 可执行文件名
const cliName = "BaiduPCS-Go"

// LoginSupervisor 网盘 CLI 登录子进程监督器
// 全局最多同时存在一个登录会话：再次发起登录会先终止上一个
type LoginSupervisor struct {
	mu      sync.Mutex
	current *loginSession
	oplog   *OpLogService

	// bundleDirs 随应用分发的安装目录，按顺序探测
	bundleDirs []string
}

type loginSession struct {
	id     string
	cmd    *exec.Cmd
	events chan model.LoginEvent
}

// NewLoginSupervisor 工厂方法
func NewLoginSupervisor(oplog *OpLogService) *LoginSupervisor {
	dirs := []string{"/usr/local/bin", "/opt/BaiduPCS-Go"}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".baidupcs", "bin"))
	}
	return &LoginSupervisor{
		oplog:      oplog,
		bundleDirs: dirs,
	}
}

// executableName 按平台补后缀
func executableName() string {
	if runtime.GOOS == "windows" {
		return cliName + ".exe"
	}
	return cliName
}

// ResolveExecutable 定位 CLI 可执行文件
// 查找顺序：操作者指定路径 -> 随应用分发目录 -> PATH
func (s *LoginSupervisor) ResolveExecutable(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
	}
	name := executableName()
	for _, dir := range s.bundleDirs {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}
	return "", &ExecutableNotFoundError{Custom: custom}
}

// StartLogin 发起一次 BDUSS 登录
// 校验失败或无法定位可执行文件时不会生成子进程，只回送一条 error 事件。
// 返回的通道在终止事件（end/error）之后关闭，之后不再有任何事件。
func (s *LoginSupervisor) StartLogin(customPath, bduss, stoken string) <-chan model.LoginEvent {
	events := make(chan model.LoginEvent, 16)

	// 1. 前置校验：不生成进程
	if bduss == "" {
		events <- model.LoginEvent{Type: model.LoginEventError, Message: "请先填写 BDUSS。"}
		close(events)
		return events
	}
	cliPath, err := s.ResolveExecutable(customPath)
	if err != nil {
		events <- model.LoginEvent{Type: model.LoginEventError, Message: err.Error()}
		close(events)
		return events
	}

	// 2. 单飞：先终止已有会话，再启动新会话
	s.mu.Lock()
	s.stopLocked()

	args := []string{"login", "-bduss=" + bduss}
	if stoken != "" {
		args = append(args, "-stoken="+stoken)
	}
	cmd := exec.Command(cliPath, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.mu.Unlock()
		s.emitSpawnError(events, err)
		return events
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		s.mu.Unlock()
		s.emitSpawnError(events, err)
		return events
	}
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		s.emitSpawnError(events, err)
		return events
	}

	session := &loginSession{id: uuid.NewString(), cmd: cmd, events: events}
	s.current = session
	s.mu.Unlock()

	s.oplog.Info("已提交网盘登录请求")
	events <- model.LoginEvent{Type: model.LoginEventStart, Message: "开始登录..."}

	// 3. 异步转发子进程输出，结束后发送终止事件并关闭通道
	var wg sync.WaitGroup
	wg.Add(2)
	go s.pumpLines(&wg, session, stdout)
	go s.pumpLines(&wg, session, stderr)
	go func() {
		wg.Wait()
		err := cmd.Wait()
		code := 0
		if err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				code = exitErr.ExitCode()
			} else {
				code = -1
			}
		}
		events <- model.LoginEvent{Type: model.LoginEventEnd, Code: &code}
		close(events)

		s.mu.Lock()
		if s.current == session {
			s.current = nil
		}
		s.mu.Unlock()
	}()
	return events
}

func (s *LoginSupervisor) emitSpawnError(events chan model.LoginEvent, err error) {
	spawnErr := &SubprocessError{Err: err}
	s.oplog.Error(spawnErr.Error())
	events <- model.LoginEvent{Type: model.LoginEventError, Message: spawnErr.Error()}
	close(events)
}

// pumpLines 把子进程的一路输出逐行转成 line 事件
func (s *LoginSupervisor) pumpLines(wg *sync.WaitGroup, session *loginSession, r io.Reader) {
	defer wg.Done()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		session.events <- model.LoginEvent{Type: model.LoginEventLine, Message: scanner.Text()}
	}
}

// StopLogin 请求终止当前登录会话；无会话时是幂等空操作
// 只发送终止信号，不等待退出，退出通过终止事件异步观察
func (s *LoginSupervisor) StopLogin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *LoginSupervisor) stopLocked() {
	if s.current == nil || s.current.cmd.Process == nil {
		return
	}
	if err := s.current.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// 信号发不出去就直接杀
		_ = s.current.cmd.Process.Kill()
	}
	s.current = nil
}

// Active 当前是否存在登录会话
func (s *LoginSupervisor) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Shutdown 宿主退出前终止活跃会话，避免孤儿进程
func (s *LoginSupervisor) Shutdown() {
	s.StopLogin()
}

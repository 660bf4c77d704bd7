package service

import (
	"crypto/tls"
	"fmt"
	"social-backend/config"
	"social-backend/internal/repository/interfaces"
	"social-backend/internal/util"
	"time"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// EmailService 负责发送好友事件的通知邮件。
// 邮件发送是尽力而为的：发送失败只记录日志，不影响业务流程。
type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
	enabled  bool
	userRepo interfaces.UserRepository
}

func NewEmailService(userRepo interfaces.UserRepository) *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
		enabled:  config.AppConfig.EmailEnabled,
		userRepo: userRepo,
	}
}

// SendFriendRequestEmail 通知收到新的好友请求
func (s *EmailService) SendFriendRequestEmail(toUserID, fromUserID int) {
	s.sendFriendEventEmail(toUserID, fromUserID, "您收到了新的好友请求",
		"%s（%s）向您发送了好友请求，登录后即可处理。")
}

// SendFriendAcceptEmail 通知好友请求已被接受
func (s *EmailService) SendFriendAcceptEmail(toUserID, fromUserID int) {
	s.sendFriendEventEmail(toUserID, fromUserID, "您的好友请求已被接受",
		"%s（%s）接受了您的好友请求，你们现在是好友了。")
}

func (s *EmailService) sendFriendEventEmail(toUserID, fromUserID int, subject, bodyFormat string) {
	if !s.enabled {
		return
	}

	to, err := s.userRepo.FindByID(toUserID)
	if err != nil || to == nil || to.Email == "" {
		return
	}
	from, err := s.userRepo.FindByID(fromUserID)
	if err != nil || from == nil {
		return
	}

	body := fmt.Sprintf(bodyFormat, from.FullName, from.Username)
	s.sendEmailAsync(to.Email, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	go func() {
		if err := s.sendEmail(to, subject, body); err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	if err := d.DialAndSend(m); err != nil {
		util.Logger.Error("发送邮件失败", zap.Error(err))
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}

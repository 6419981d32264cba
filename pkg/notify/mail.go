package notify

import (
	"fmt"

	"gopkg.in/gomail.v2"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/pkg/config"
)

// SendAssignmentMail emails a contact that a task was assigned to them.
// With no SMTP host configured it is a no-op.
func SendAssignmentMail(receiver, taskTitle, projectName string) {
	conf := config.GetConfig()
	if conf.SMTP.Host == "" || receiver == "" {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", conf.SMTP.Sender)
	m.SetHeader("To", receiver)
	m.SetHeader("Subject", fmt.Sprintf("[Sitegrid] Task assigned: %s", taskTitle))
	m.SetBody("text/plain", fmt.Sprintf(
		"You have been assigned the task %q in project %q.", taskTitle, projectName))

	d := gomail.NewDialer(conf.SMTP.Host, conf.SMTP.Port, conf.SMTP.User, conf.SMTP.Pass)
	go func() {
		if err := d.DialAndSend(m); err != nil {
			klog.Errorf("assignment mail failed, receiver: %s, err: %v", receiver, err)
		}
	}()
}

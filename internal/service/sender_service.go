package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"path/filepath"
	"time"

	"pawhaven/internal/entities"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

// SendAppointmentEmail notifies the pet owner about an appointment status
// change. The send runs in a goroutine; failures are logged, never returned.
func (s *SenderService) SendAppointmentEmail(appt entities.AppointmentResponse, status string) {
	emailData := entities.AppointmentEmailData{
		UserName:           appt.UserName,
		AppointmentCode:    appt.Code,
		DoctorName:         appt.DoctorName,
		StartTimeFormatted: appt.StartTime.Format("02 Jan 2006 15:04 MST"),
		DurationMinutes:    appt.DurationMinutes,
		Status:             status,
		CurrentYear:        time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your PawHaven consultation is %s - Code: %s", status, appt.Code)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour veterinary consultation at PawHaven is %s.\n\n"+
			"Appointment Details:\n"+
			"Code: %s\n"+
			"Doctor: %s\n"+
			"Starts: %s\n"+
			"Duration: %d minutes\n\n"+
			"Thank you for choosing PawHaven.\n\n"+
			"PawHaven. All rights reserved.",
		appt.UserName, status, appt.Code, appt.DoctorName,
		emailData.StartTimeFormatted, appt.DurationMinutes,
	)

	htmlBody := renderEmailTemplate("appointment_email.html", emailData, appt.Code)

	go func(toEmail, userName, subject, plainBody, htmlBodyContent string) {
		if errEmail := SendEmailWithSendGrid(toEmail, userName, subject, plainBody, htmlBodyContent); errEmail != nil {
			log.Printf("WARNING (async): failed to send email for appointment %s: %v", appt.Code, errEmail)
		}
	}(appt.UserEmail, appt.UserName, emailSubject, plainTextBody, htmlBody)
}

func (s *SenderService) SendAppointmentSMS(appt entities.AppointmentResponse, status string) {
	if appt.UserPhone == "" {
		return
	}
	smsMessage := fmt.Sprintf("PawHaven: consultation %s is %s!\nStarts: %s.\nMore details in your email.",
		appt.Code, status, appt.StartTime.Format("02/01 15:04"))

	go func(phone, body string) {
		if errSMS := SendSMS(phone, body); errSMS != nil {
			log.Printf("WARNING (async): failed to send SMS for appointment %s to %s: %v", appt.Code, phone, errSMS)
		}
	}(appt.UserPhone, smsMessage)
}

// SendAdoptionEmail notifies an applicant that their adoption request changed
// status.
func (s *SenderService) SendAdoptionEmail(toEmail, userName, petName, status string) {
	emailSubject := fmt.Sprintf("Your adoption request for %s is %s", petName, status)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour adoption request for %s has been %s.\n\n"+
			"Thank you for giving a pet a home.\n\nPawHaven. All rights reserved.",
		userName, petName, status,
	)

	go func() {
		if err := SendEmailWithSendGrid(toEmail, userName, emailSubject, plainTextBody, ""); err != nil {
			log.Printf("WARNING (async): failed to send adoption email to %s: %v", toEmail, err)
		}
	}()
}

func (s *SenderService) SendAdoptionSMS(phone, petName, status string) {
	if phone == "" {
		return
	}
	go func() {
		msg := fmt.Sprintf("PawHaven: your adoption request for %s has been %s. Details in your email.", petName, status)
		if err := SendSMS(phone, msg); err != nil {
			log.Printf("WARNING (async): failed to send adoption SMS to %s: %v", phone, err)
		}
	}()
}

// SendOrderEmail sends the store receipt after a successful payment.
func (s *SenderService) SendOrderEmail(toEmail, userName, orderCode string, totalCents int, status string) {
	emailData := entities.OrderEmailData{
		UserName:       userName,
		OrderCode:      orderCode,
		TotalFormatted: fmt.Sprintf("%.2f EUR", float64(totalCents)/100),
		Status:         status,
		CurrentYear:    time.Now().Year(),
	}

	emailSubject := fmt.Sprintf("Your PawHaven order %s is %s", orderCode, status)
	plainTextBody := fmt.Sprintf(
		"Hello %s,\n\nYour PawHaven order %s is %s.\nTotal: %s\n\n"+
			"Thank you for shopping with us.\n\nPawHaven. All rights reserved.",
		userName, orderCode, status, emailData.TotalFormatted,
	)

	htmlBody := renderEmailTemplate("order_email.html", emailData, orderCode)

	go func() {
		if err := SendEmailWithSendGrid(toEmail, userName, emailSubject, plainTextBody, htmlBody); err != nil {
			log.Printf("WARNING (async): failed to send receipt for order %s: %v", orderCode, err)
		}
	}()
}

func (s *SenderService) SendRescueSMS(phone, reference, status string) {
	if phone == "" {
		return
	}
	go func() {
		msg := fmt.Sprintf("PawHaven: rescue report %s is now %s. Thank you for reporting.", reference, status)
		if err := SendSMS(phone, msg); err != nil {
			log.Printf("WARNING (async): failed to send rescue SMS to %s: %v", phone, err)
		}
	}()
}

func renderEmailTemplate(name string, data interface{}, ref string) string {
	tmplPath := filepath.Join("internal", "templates", name)
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("WARNING: error parsing email template (%s): %v", tmplPath, err)
		return ""
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("WARNING: error executing email template for %s: %v", ref, err)
		return ""
	}
	return buf.String()
}

package utils

import (
	"os"

	"github.com/mailjet/mailjet-apiv3-go/v3"
)

// SendMail delivers a transactional email (forgot-password flow) through Mailjet.
func SendMail(toEmail string, subject string, html string) (bool, error) {
	client := mailjet.NewMailjetClient(os.Getenv("MJ_APIKEY_PUBLIC"), os.Getenv("MJ_APIKEY_PRIVATE"))

	messagesInfo := []mailjet.InfoMessagesV31{
		{
			From: &mailjet.RecipientV31{
				Email: os.Getenv("MJ_FROM_EMAIL"),
				Name:  "Boat Rental",
			},
			To: &mailjet.RecipientsV31{
				mailjet.RecipientV31{
					Email: toEmail,
				},
			},
			Subject:  subject,
			HTMLPart: html,
		},
	}

	messages := mailjet.MessagesV31{Info: messagesInfo}
	res, err := client.SendMailV31(&messages)
	if err != nil {
		return false, err
	}

	return len(res.ResultsV31) > 0, nil
}

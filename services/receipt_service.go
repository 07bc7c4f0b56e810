package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/abdellah799/travel_booking/configs"
	"github.com/abdellah799/travel_booking/models"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// generateReceipt renders a PDF receipt for a completed payment and stores its
// Cloudinary URL on the payment record. Failures are logged and swallowed; the
// payment itself already succeeded.
func (s *PaymentService) generateReceipt(payment models.Payment, booking models.Booking) {
	if config.Config("CLOUDINARY_URL") == "" {
		log.Println("Cloudinary not configured, skipping receipt generation.")
		return
	}

	htmlData, err := renderReceiptHTML(payment, booking)
	if err != nil {
		log.Printf("🔥 Failed to render receipt HTML: %v", err)
		return
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		log.Printf("🔥 Failed to generate receipt PDF: %v", err)
		return
	}

	uploadURL, err := uploadReceipt(pdfBytes, payment.ID)
	if err != nil {
		log.Printf("🔥 Failed to upload receipt to Cloudinary: %v", err)
		return
	}

	if err := s.db.Model(&models.Payment{}).Where("id = ?", payment.ID).Update("receipt_url", uploadURL).Error; err != nil {
		log.Printf("🔥 Failed to save receipt URL for payment %d: %v", payment.ID, err)
		return
	}

	log.Printf("✅ Generated receipt for payment %d.", payment.ID)
}

func renderReceiptHTML(payment models.Payment, booking models.Booking) (string, error) {
	tmpl, err := template.ParseFiles("templates/receipt.html")
	if err != nil {
		return "", err
	}

	txRef := ""
	if payment.TransactionRef != nil {
		txRef = *payment.TransactionRef
	}

	data := struct {
		BookingID      uint
		ListingName    string
		Location       string
		CheckIn        string
		CheckOut       string
		Amount         string
		Currency       string
		TransactionRef string
		IssuedOn       string
	}{
		BookingID:      booking.ID,
		ListingName:    booking.Listing.Name,
		Location:       booking.Listing.Location,
		CheckIn:        booking.StartDate.Format("January 2, 2006"),
		CheckOut:       booking.EndDate.Format("January 2, 2006"),
		Amount:         fmt.Sprintf("%.2f", payment.Amount),
		Currency:       payment.Currency,
		TransactionRef: txRef,
		IssuedOn:       time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReceipt(fileBytes []byte, paymentID uint) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("receipts/%d_%s", paymentID, uuid.New().String()),
		Folder:       "travel_booking_receipts",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}

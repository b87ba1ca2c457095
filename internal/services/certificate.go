package services

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"gorm.io/gorm"

	"github.com/yungbote/skillbridge-backend/internal/data/repos"
	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/platform/apierr"
	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

const (
	certificateWidth  = 1200
	certificateHeight = 850
)

type CertificateService interface {
	ListForUser(ctx context.Context, userID int64) ([]*types.Certificate, error)
	// RenderPNG draws an owned certificate; a foreign or missing id is NotFound.
	RenderPNG(ctx context.Context, userID, certificateID int64) ([]byte, error)
}

type certificateService struct {
	db           *gorm.DB
	log          *logger.Logger
	certificates repos.CertificateRepo
	users        repos.UserRepo

	fontsOnce sync.Once
	fontsErr  error
	regular   *truetype.Font
	bold      *truetype.Font
}

func NewCertificateService(db *gorm.DB, log *logger.Logger, certificates repos.CertificateRepo, users repos.UserRepo) CertificateService {
	return &certificateService{
		db:           db,
		log:          log.With("service", "CertificateService"),
		certificates: certificates,
		users:        users,
	}
}

func (s *certificateService) ListForUser(ctx context.Context, userID int64) ([]*types.Certificate, error) {
	out, err := s.certificates.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return out, nil
}

func (s *certificateService) RenderPNG(ctx context.Context, userID, certificateID int64) ([]byte, error) {
	cert, err := s.certificates.GetByIDForUser(ctx, nil, certificateID, userID)
	if err != nil {
		return nil, fmt.Errorf("load certificate: %w", err)
	}
	if cert == nil {
		return nil, apierr.NotFound("Certificate")
	}
	users, err := s.users.GetByIDs(ctx, nil, []int64{userID})
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("User")
	}

	buf, err := s.draw(users[0].DisplayName(), cert)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *certificateService) loadFonts() error {
	s.fontsOnce.Do(func() {
		s.regular, s.fontsErr = truetype.Parse(goregular.TTF)
		if s.fontsErr != nil {
			return
		}
		s.bold, s.fontsErr = truetype.Parse(gobold.TTF)
	})
	return s.fontsErr
}

func face(f *truetype.Font, size float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingNone})
}

func (s *certificateService) draw(recipient string, cert *types.Certificate) (bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := s.loadFonts(); err != nil {
		return buf, fmt.Errorf("parse certificate fonts: %w", err)
	}

	const w, h = float64(certificateWidth), float64(certificateHeight)
	dc := gg.NewContext(certificateWidth, certificateHeight)

	dc.SetColor(color.NRGBA{R: 252, G: 250, B: 244, A: 255})
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetColor(color.NRGBA{R: 31, G: 78, B: 121, A: 255})
	dc.SetLineWidth(12)
	dc.DrawRectangle(30, 30, w-60, h-60)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawRectangle(54, 54, w-108, h-108)
	dc.Stroke()

	dc.SetFontFace(face(s.bold, 56))
	dc.DrawStringAnchored("Certificate of Completion", w/2, 200, 0.5, 0.5)

	dc.SetColor(color.NRGBA{R: 60, G: 60, B: 60, A: 255})
	dc.SetFontFace(face(s.regular, 28))
	dc.DrawStringAnchored("This certifies that", w/2, 310, 0.5, 0.5)

	dc.SetColor(color.Black)
	dc.SetFontFace(face(s.bold, 48))
	dc.DrawStringAnchored(recipient, w/2, 390, 0.5, 0.5)

	dc.SetColor(color.NRGBA{R: 60, G: 60, B: 60, A: 255})
	dc.SetFontFace(face(s.regular, 28))
	dc.DrawStringAnchored("has completed the SkillBridge module", w/2, 470, 0.5, 0.5)

	dc.SetColor(color.NRGBA{R: 31, G: 78, B: 121, A: 255})
	dc.SetFontFace(face(s.bold, 40))
	dc.DrawStringWrapped(cert.Title, w/2, 550, 0.5, 0.5, w-240, 1.3, gg.AlignCenter)

	dc.SetColor(color.NRGBA{R: 90, G: 90, B: 90, A: 255})
	dc.SetFontFace(face(s.regular, 22))
	dc.DrawStringAnchored("Issued "+cert.IssuedAt.UTC().Format("January 2, 2006"), w/2, h-140, 0.5, 0.5)
	dc.DrawStringAnchored(fmt.Sprintf("Certificate #%d", cert.ID), w/2, h-105, 0.5, 0.5)

	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf, nil
}

package utils

import (
	"fmt"
	"log"

	"github.com/skip2/go-qrcode"
)

// GenerateReferralLink генерирует реферальную ссылку пользователя.
// botUsername передается снаружи, это конфигурационное значение.
func GenerateReferralLink(botUsername string, chatID int64) (string, error) {
	if botUsername == "" {
		return "", fmt.Errorf("имя пользователя бота не настроено")
	}
	if chatID == 0 {
		return "", fmt.Errorf("невалидный ID пользователя для реферальной ссылки")
	}
	return fmt.Sprintf("https://t.me/%s?start=ref_%d", botUsername, chatID), nil
}

// GenerateReferralQR кодирует уже собранную реферальную ссылку в PNG.
func GenerateReferralQR(link string) ([]byte, error) {
	if link == "" {
		return nil, fmt.Errorf("пустая ссылка для QR-кода")
	}
	qrBytes, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		log.Printf("GenerateReferralQR: ошибка кодирования QR-кода для '%s': %v", link, err)
		return nil, err
	}
	return qrBytes, nil
}

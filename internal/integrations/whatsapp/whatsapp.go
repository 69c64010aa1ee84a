// Package whatsapp формирует wa.me ссылки для уведомлений клиентов.
// Отправка сообщений остаётся на стороне клиента — сервис только
// подготавливает готовую к открытию ссылку с текстом.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// LinkBuilder строит wa.me ссылки для событий бронирования
type LinkBuilder struct {
	salonName string
}

// NewLinkBuilder создает новый экземпляр LinkBuilder
func NewLinkBuilder(salonName string) *LinkBuilder {
	return &LinkBuilder{salonName: salonName}
}

// BookingCreated формирует ссылку с текстом заявки на запись.
// Номер телефона нормализуется до цифр, как требует wa.me.
func (b *LinkBuilder) BookingCreated(phone, clientName, serviceNames, date, startTime string) string {
	text := fmt.Sprintf(
		"Здравствуйте! Это %s. Мы получили вашу заявку на запись, %s: %s, %s в %s. Мы свяжемся с вами для подтверждения.",
		b.salonName, clientName, serviceNames, date, startTime,
	)
	return b.link(phone, text)
}

// BookingConfirmed формирует ссылку с текстом подтверждения записи
func (b *LinkBuilder) BookingConfirmed(phone, clientName, serviceNames, date, startTime string) string {
	text := fmt.Sprintf(
		"Здравствуйте, %s! Ваша запись в %s подтверждена: %s, %s в %s. Ждём вас!",
		clientName, b.salonName, serviceNames, date, startTime,
	)
	return b.link(phone, text)
}

// BookingRescheduled формирует ссылку с текстом о переносе записи
func (b *LinkBuilder) BookingRescheduled(phone, clientName, serviceNames, date, startTime string) string {
	text := fmt.Sprintf(
		"Здравствуйте, %s! Ваша запись в %s перенесена: %s, новое время — %s в %s.",
		clientName, b.salonName, serviceNames, date, startTime,
	)
	return b.link(phone, text)
}

// BookingCancelled формирует ссылку с текстом об отмене записи
func (b *LinkBuilder) BookingCancelled(phone, clientName, serviceNames, date, startTime string) string {
	text := fmt.Sprintf(
		"Здравствуйте, %s! Ваша запись в %s на %s (%s в %s) отменена. Будем рады видеть вас в другое время.",
		clientName, b.salonName, serviceNames, date, startTime,
	)
	return b.link(phone, text)
}

func (b *LinkBuilder) link(phone, text string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", normalizePhone(phone), url.QueryEscape(text))
}

// normalizePhone оставляет в номере только цифры
func normalizePhone(phone string) string {
	var sb strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Пакет texts — презентационный слой: таблицы строк по локалям и чистая
// функция подстановки. Ядро бота не форматирует текст само.
package texts

import (
	"log"
	"strings"

	"spkbot/internal/constants"
)

// T возвращает строку key для локали locale с подстановкой параметров
// вида {name}. Неизвестная локаль откатывается к локали по умолчанию,
// неизвестный ключ возвращается как есть (и логируется).
func T(locale, key string, params map[string]string) string {
	table, ok := tables[locale]
	if !ok {
		table = tables[constants.DEFAULT_LOCALE]
	}
	text, ok := table[key]
	if !ok {
		// Ключ может быть только в таблице по умолчанию.
		text, ok = tables[constants.DEFAULT_LOCALE][key]
		if !ok {
			log.Printf("texts.T: неизвестный ключ '%s' (локаль %s)", key, locale)
			return key
		}
	}
	if len(params) == 0 {
		return text
	}
	pairs := make([]string, 0, len(params)*2)
	for name, value := range params {
		pairs = append(pairs, "{"+name+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

var tables = map[string]map[string]string{
	constants.LOCALE_UZ: {
		"welcome": "👋 <b>Assalomu alaykum!</b>\n\nSPK Systems botiga xush kelibsiz 🤝\n\n🛒 Xarid qiling\n💰 Cashback oling\n📊 Balansingizni kuzating\n\n👇 Quyidagi menyudan kerakli bo'limni tanlang",

		"choose_language": "🌐 Tilni tanlang:",
		"enter_name":      "✏️ Ismingizni kiriting:",
		"name_too_short":  "❌ Ism juda qisqa!",
		"share_phone":     "📱 Telefon raqamingizni yuboring:",
		"phone_button":    "📞 Kontaktni yuborish",
		"registered":      "✅ Ro'yxatdan muvaffaqiyatli o'tdingiz!",
		"invalid_phone":   "❌ Iltimos, kontaktni yuboring:",

		"menu_cashback":        "💰 Cashback",
		"menu_balance":         "📊 Balans",
		"menu_history":         "🧾 Xaridlar tarixi",
		"menu_location":        "📍 Manzil",
		"menu_contact":         "📞 Malumot uchun",
		"menu_group":           "👥 Guruhga qo'shilish",
		"menu_referral":        "👤 Odam qo'shish",
		"menu_back":            "⬅️ Orqaga",
		"menu_change_language": "🌐 Tilni o'zgartirish",

		"cashback_title":      "💰 <b>Cashback hisoblash</b>\n\nXarid qilgan summangizni yozing.\nBot avtomatik tarzda <b>1% dan 5% gacha</b> cashback hisoblab beradi.\n\n📌 Misol: <code>1000000</code>",
		"invalid_amount":      "❌ Iltimos, faqat raqam kiriting:\nMisol: <code>150000</code>",
		"claim_photo_prompt":  "📸 <b>Mahsulot rasmini yuboring:</b>\n\nIltimos, sotib olgan mahsulotingiz rasmini yuboring.",
		"claim_photo_only":    "❌ Iltimos, faqat rasm yuboring:",
		"claim_sent":          "✅ <b>So'rovingiz adminga yuborildi!</b>\n\nIltimos, tasdiqlashini kuting...",
		"claim_send_failed":   "❌ Xatolik yuz berdi. Iltimos keyinroq qayta urinib ko'ring.",
		"claim_approved":      "✅ <b>Xarid muvaffaqiyatli qabul qilindi!</b>\n\n🧾 Xarid summasi: <b>{amount} so'm</b>\n🎯 Cashback foizi: <b>{percent}%</b>\n💸 Cashback: <b>{cashback} so'm</b>\n💰 Joriy balans: <b>{balance} so'm</b>\n\n🎉 Cashback balansingizga qo'shildi!",
		"claim_rejected":      "❌ <b>So'rovingiz bekor qilindi</b>\n\nAdmin sizning so'rovingizni bekor qildi.",
		"claim_admin_caption": "🆕 <b>Yangi Cashback So'rovi</b>\n\n👤 Foydalanuvchi: <b>{name}</b>\n🆔 ID: <code>{user_id}</code>\n📱 Telefon: <code>{phone}</code>\n💵 Xarid summasi: <b>{amount} so'm</b>\n\n❓ Tasdiqlaysizmi?",

		"balance_title": "📊 <b>Sizning balansingiz:</b>\n\n💰 Cashback: <b>{balance} so'm</b>\n\nℹ️ Xarid qilganingiz sari balansingiz oshib boradi.",

		"bonus_received": "🎁 <b>Sizga bonus qo'shildi!</b>\n\n💰 Bonus: <b>{bonus} so'm</b>\n💵 Joriy balans: <b>{balance} so'm</b>",

		"history_empty": "🧾 <b>Xaridlar tarixi</b>\n\nSiz hali xarid amalga oshirmagansiz.",
		"history_item":  "🗓 <b>{date}</b>\n💵 Summa: {amount} so'm\n🎯 Foiz: {percent}%\n💰 Cashback: <code>{delta}</code> so'm\n<b>{type}</b>\n━━━━━━━━━━━━━━\n",

		"type_purchase":     "🛒 Xarid",
		"type_referral":     "👤 Referral bonus",
		"type_admin_bonus":  "🎁 Admin bonus",
		"type_admin_deduct": "➖ Admin ayirish",

		"referral_title":           "👤 <b>Do'stlaringizni taklif qiling!</b>\n\n💎 Havolangiz bilan ro'yxatdan o'tgan har bir do'stingiz uchun <b>1% bonus</b> olasiz!\n\n📊 Joriy balans: <b>{balance} so'm</b>\n👥 Taklif qilganlar: <b>{count} ta</b>\n\n👇 Havolani ulashing:\n{link}",
		"referral_share":           "📤 Ulashish / Поделиться",
		"referral_success_user":    "🎉 Siz do'stingiz taklifi bilan qo'shildingiz!",
		"referral_success_inviter": "🎉 Tabriklaymiz! Yangi do'stingiz qo'shildi!\n\n💰 Balansingizga <b>{bonus} so'm</b> bonus qo'shildi!\n💵 Joriy balans: <b>{balance} so'm</b>",

		"location_text": "📍 <b>SPK Systems manzillari:</b>\n\n🏬 <b>1. SPK Do'kon (Yangi Jomi)</b>\n📌 Manzil: Yangi Jomi 1 blok 19-do'kon\n🕘 Ish vaqti: Har kuni 08:00 – 18:00\n\n🏬 <b>2. SPK Do'kon (Dimax)</b>\n📌 Manzil: Dimax Nazarbek bozor 226-do'kon\n🕘 Ish vaqti: Har kuni 08:00 – 18:00",
		"contact_text":  "📞 <b>Biz bilan bog'lanish:</b>\n\n☎️ Telefon: +998338073535\n💬 Telegram: https://t.me/laziz3535",
		"group_text":    "🌐 <b>Bizning guruhimiz: https://t.me/+gc0Ps6bjW8llN2Iy</b>",

		"permission_denied": "❌ Ruxsat yo'q!",

		"admin_panel":            "🔐 <b>Admin Panel</b>\n\nQuyidagi bo'limlardan birini tanlang:",
		"admin_users_title":      "👥 <b>Foydalanuvchilar ro'yxati:</b>",
		"admin_no_users":         "❌ Foydalanuvchilar yo'q",
		"admin_user_info":        "👤 <b>Foydalanuvchi ma'lumotlari</b>\n\n📝 Ism: <b>{name}</b>\n📱 Telefon: <code>{phone}</code>\n💰 Balans: <b>{balance} so'm</b>\n🆔 ID: <code>{user_id}</code>",
		"admin_user_not_found":   "Foydalanuvchi topilmadi!",
		"admin_back_to_users":    "◀️ Orqaga (Foydalanuvchilar)",
		"admin_reset_button":     "🗑 Balansni 0 ga tushirish",
		"admin_reset_success":    "✅ Foydalanuvchi balansi va tarixi tozalandi!",
		"admin_bonus_button":     "🎁 Bonus berish",
		"admin_enter_percent":    "📊 <b>Bonus foizini kiriting</b>\n\nFoydalanuvchining joriy balansiga qancha foiz (%) bonus qo'shmoqchisiz?\n\nMisol: <code>5</code> (5% bonus)",
		"admin_invalid_percent":  "❌ Iltimos, faqat raqam kiriting (1-100 orasida):",
		"admin_bonus_success":    "✅ <b>Bonus muvaffaqiyatli qo'shildi!</b>\n\n💰 Joriy balans: <b>{old_balance} so'm</b>\n🎁 Bonus ({percent}%): <b>+{bonus} so'm</b>\n💵 Yangi balans: <b>{new_balance} so'm</b>",
		"admin_bonus_zero":       "ℹ️ Bonus 0 so'm bo'ldi, balans o'zgarmadi.",
		"admin_deduct_button":    "➖ Ayirish",
		"admin_deduct_title":     "➖ <b>Balansdan ayirish</b>\n\nJoriy balans: <b>{balance}</b> so'm\n\nAyirish miqdorini kiriting (so'mda):\nMisol: <code>50000</code>",
		"admin_deduct_invalid":   "❌ Iltimos, faqat musbat raqam kiriting:",
		"admin_deduct_too_much":  "❌ Xatolik! Balansda yetarli mablag' yo'q.\nJoriy: {balance} so'm",
		"admin_deduct_success":   "✅ <b>Balans muvaffaqiyatli ayirildi!</b>\n\n💰 Eski balans: <b>{old_balance}</b> so'm\n➖ Ayirildi: <b>{amount}</b> so'm\n💵 Yangi balans: <b>{new_balance}</b> so'm",
		"admin_history_button":   "📜 Tarix",
		"admin_history_empty":    "📜 <b>Tranzaksiyalar tarixi bo'sh</b>",
		"admin_delete_button":    "🗑 O'chirish",
		"admin_delete_confirm":   "❓ <b>Foydalanuvchini o'chirish</b>\n\nRostdan ham ushbu foydalanuvchini o'chirmoqchimisiz?\n\nBu amalni qaytarib bo'lmaydi!",
		"admin_delete_success":   "✅ Foydalanuvchi muvaffaqiyatli o'chirildi!",
		"admin_delete_cancel":    "❌ O'chirish bekor qilindi.",
		"admin_stats_title":      "📊 <b>Umumiy Statistika</b>",
		"admin_stats_weekly":     "📈 Oxirgi 7 kun:",
		"admin_broadcast_title":  "📢 <b>Barcha foydalanuvchilarga xabar yuborish</b>\n\nXabaringizni kiriting (matn, rasm yoki video):\n\n❌ Bekor qilish uchun /cancel",
		"admin_broadcast_ask":    "❓Ushbu xabarni barcha foydalanuvchilarga yuborishni xohlaysizmi?",
		"admin_broadcast_sent":   "✅ <b>Yuborildi!</b>\n\n✔️ Muvaffaqiyatli: <b>{sent}</b> ta\n❌ Muvaffaqiyatsiz: <b>{failed}</b> ta",
		"admin_broadcast_cancel": "❌ Xabar yuborish bekor qilindi.",
		"admin_claim_approved":   "✅ <b>TASDIQLANDI</b>\n💰 Cashback: {cashback} so'm ({percent}%)",
		"admin_claim_rejected":   "❌ <b>BEKOR QILINDI</b>",
		"admin_claim_resolved":   "ℹ️ Bu so'rov allaqachon hal qilingan.",
		"admin_error":            "❌ Xatolik yuz berdi!",
	},

	constants.LOCALE_RU: {
		"welcome": "👋 <b>Здравствуйте!</b>\n\nДобро пожаловать в бот SPK Systems 🤝\n\n🛒 Совершайте покупки\n💰 Получайте кешбэк\n📊 Отслеживайте баланс\n\n👇 Выберите нужный раздел из меню ниже",

		"choose_language": "🌐 Выберите язык:",
		"enter_name":      "✏️ Введите ваше имя:",
		"name_too_short":  "❌ Имя слишком короткое!",
		"share_phone":     "📱 Отправьте ваш номер телефона:",
		"phone_button":    "📞 Отправить контакт",
		"registered":      "✅ Вы успешно зарегистрированы!",
		"invalid_phone":   "❌ Пожалуйста, отправьте контакт:",

		"menu_cashback":        "💰 Кешбэк",
		"menu_balance":         "📊 Баланс",
		"menu_history":         "🧾 История покупок",
		"menu_location":        "📍 Адрес",
		"menu_contact":         "📞 Для справки",
		"menu_group":           "👥 Присоединиться к группе",
		"menu_referral":        "👤 Добавить человека",
		"menu_back":            "⬅️ Назад",
		"menu_change_language": "🌐 Изменить язык",

		"cashback_title":      "💰 <b>Расчет кешбэка</b>\n\nВведите сумму покупки.\nБот автоматически рассчитает <b>кешбэк от 1% до 5%</b>.\n\n📌 Пример: <code>1000000</code>",
		"invalid_amount":      "❌ Пожалуйста, введите только число:\nПример: <code>150000</code>",
		"claim_photo_prompt":  "📸 <b>Отправьте фото товара:</b>\n\nПожалуйста, отправьте фото купленного товара.",
		"claim_photo_only":    "❌ Пожалуйста, отправьте только фото:",
		"claim_sent":          "✅ <b>Ваш запрос отправлен администратору!</b>\n\nПожалуйста, ожидайте подтверждения...",
		"claim_send_failed":   "❌ Произошла ошибка. Попробуйте позже.",
		"claim_approved":      "✅ <b>Покупка успешно принята!</b>\n\n🧾 Сумма покупки: <b>{amount} сум</b>\n🎯 Процент кешбэка: <b>{percent}%</b>\n💸 Кешбэк: <b>{cashback} сум</b>\n💰 Текущий баланс: <b>{balance} сум</b>\n\n🎉 Кешбэк добавлен на ваш баланс!",
		"claim_rejected":      "❌ <b>Ваш запрос отменен</b>\n\nАдминистратор отменил ваш запрос.",
		"claim_admin_caption": "🆕 <b>Новый запрос на кешбэк</b>\n\n👤 Пользователь: <b>{name}</b>\n🆔 ID: <code>{user_id}</code>\n📱 Телефон: <code>{phone}</code>\n💵 Сумма покупки: <b>{amount} сум</b>\n\n❓ Подтверждаете?",

		"balance_title": "📊 <b>Ваш баланс:</b>\n\n💰 Кешбэк: <b>{balance} сум</b>\n\nℹ️ С каждой покупкой ваш баланс растет.",

		"bonus_received": "🎁 <b>Вам добавлен бонус!</b>\n\n💰 Бонус: <b>{bonus} сум</b>\n💵 Текущий баланс: <b>{balance} сум</b>",

		"history_empty": "🧾 <b>История покупок</b>\n\nВы еще не совершали покупок.",
		"history_item":  "🗓 <b>{date}</b>\n💵 Сумма: {amount} сум\n🎯 Процент: {percent}%\n💰 Кешбэк: <code>{delta}</code> сум\n<b>{type}</b>\n━━━━━━━━━━━━━━\n",

		"type_purchase":     "🛒 Покупка",
		"type_referral":     "👤 Реферальный бонус",
		"type_admin_bonus":  "🎁 Бонус от админа",
		"type_admin_deduct": "➖ Вычет админа",

		"referral_title":           "👤 <b>Приглашайте друзей!</b>\n\n💎 За каждого друга, зарегистрировавшегося по вашей ссылке, вы получите <b>1% бонуса</b>!\n\n📊 Текущий баланс: <b>{balance} сум</b>\n👥 Приглашено: <b>{count} чел.</b>\n\n👇 Поделитесь ссылкой:\n{link}",
		"referral_share":           "📤 Ulashish / Поделиться",
		"referral_success_user":    "🎉 Вы присоединились по приглашению друга!",
		"referral_success_inviter": "🎉 Поздравляем! Новый друг присоединился!\n\n💰 На ваш баланс добавлено <b>{bonus} сум</b>!\n💵 Текущий баланс: <b>{balance} сум</b>",

		"location_text": "📍 <b>Адреса SPK Systems:</b>\n\n🏬 <b>1. Магазин SPK (Янги Джоми)</b>\n📌 Адрес: Янги Джоми 1 блок 19-магазин\n🕘 Время работы: Ежедневно 08:00 – 18:00\n\n🏬 <b>2. Магазин SPK (Димах)</b>\n📌 Адрес: Димах Назарбек базар 226-магазин\n🕘 Время работы: Ежедневно 08:00 – 18:00",
		"contact_text":  "📞 <b>Связаться с нами:</b>\n\n☎️ Телефон: +998338073535\n💬 Telegram: https://t.me/laziz3535",
		"group_text":    "🌐 <b>Наша группа: https://t.me/+gc0Ps6bjW8llN2Iy</b>",

		"permission_denied": "❌ Нет доступа!",

		"admin_panel":            "🔐 <b>Admin Panel</b>\n\nВыберите раздел:",
		"admin_users_title":      "👥 <b>Список пользователей:</b>",
		"admin_no_users":         "❌ Пользователей нет",
		"admin_user_info":        "👤 <b>Информация о пользователе</b>\n\n📝 Имя: <b>{name}</b>\n📱 Телефон: <code>{phone}</code>\n💰 Баланс: <b>{balance} сум</b>\n🆔 ID: <code>{user_id}</code>",
		"admin_user_not_found":   "Пользователь не найден!",
		"admin_back_to_users":    "◀️ Назад (Пользователи)",
		"admin_reset_button":     "🗑 Обнулить баланс",
		"admin_reset_success":    "✅ Баланс и история пользователя очищены!",
		"admin_bonus_button":     "🎁 Дать бонус",
		"admin_enter_percent":    "📊 <b>Введите процент бонуса</b>\n\nСколько процентов (%) добавить к текущему балансу пользователя?\n\nПример: <code>5</code> (5% бонус)",
		"admin_invalid_percent":  "❌ Пожалуйста, введите только число (от 1 до 100):",
		"admin_bonus_success":    "✅ <b>Бонус успешно добавлен!</b>\n\n💰 Текущий баланс: <b>{old_balance} сум</b>\n🎁 Бонус ({percent}%): <b>+{bonus} сум</b>\n💵 Новый баланс: <b>{new_balance} сум</b>",
		"admin_bonus_zero":       "ℹ️ Бонус составил 0 сум, баланс не изменен.",
		"admin_deduct_button":    "➖ Вычесть",
		"admin_deduct_title":     "➖ <b>Вычесть с баланса</b>\n\nТекущий баланс: <b>{balance}</b> сум\n\nВведите сумму для вычитания:\nПример: <code>50000</code>",
		"admin_deduct_invalid":   "❌ Пожалуйста, введите только положительное число:",
		"admin_deduct_too_much":  "❌ Ошибка! Недостаточно средств на балансе.\nТекущий: {balance} сум",
		"admin_deduct_success":   "✅ <b>С баланса успешно вычтено!</b>\n\n💰 Старый баланс: <b>{old_balance}</b> сум\n➖ Вычтено: <b>{amount}</b> сум\n💵 Новый баланс: <b>{new_balance}</b> сум",
		"admin_history_button":   "📜 История",
		"admin_history_empty":    "📜 <b>История транзакций пуста</b>",
		"admin_delete_button":    "🗑 Удалить",
		"admin_delete_confirm":   "❓ <b>Удаление пользователя</b>\n\nВы действительно хотите удалить этого пользователя?\n\nЭто действие нельзя отменить!",
		"admin_delete_success":   "✅ Пользователь успешно удален!",
		"admin_delete_cancel":    "❌ Удаление отменено.",
		"admin_stats_title":      "📊 <b>Общая статистика</b>",
		"admin_stats_weekly":     "📈 Последние 7 дней:",
		"admin_broadcast_title":  "📢 <b>Отправить сообщение всем пользователям</b>\n\nВведите сообщение (текст, фото или видео):\n\n❌ Отменить /cancel",
		"admin_broadcast_ask":    "❓Отправить это сообщение всем пользователям?",
		"admin_broadcast_sent":   "✅ <b>Отправлено!</b>\n\n✔️ Успешно: <b>{sent}</b>\n❌ Неудачно: <b>{failed}</b>",
		"admin_broadcast_cancel": "❌ Отправка отменена.",
		"admin_claim_approved":   "✅ <b>ПОДТВЕРЖДЕНО</b>\n💰 Кешбэк: {cashback} сум ({percent}%)",
		"admin_claim_rejected":   "❌ <b>ОТМЕНЕНО</b>",
		"admin_claim_resolved":   "ℹ️ Этот запрос уже разрешен.",
		"admin_error":            "❌ Произошла ошибка!",
	},
}

package telegram

import "fmt"

// AccessMessage returns the text the bot sends after a confirmed payment.
func AccessMessage(productCode string, links AccessLinks) string {
	switch productCode {
	case "webinar":
		if links.WebinarAccessURL != "" {
			return fmt.Sprintf(
				"Ваша заявка на вебинар подтверждена.\n\n"+
					"Я рада приветствовать вас среди участников. Вот ваш персональный доступ:\n%s\n\n"+
					"Благодарю за доверие и до встречи на вебинаре!",
				links.WebinarAccessURL,
			)
		}
		return "Оплата прошла успешно, вы получили доступ на вебинар.\n\n" +
			"Он придёт вам в ближайшее время. Благодарю за доверие!"

	case "group", "group_standard", "group_vip":
		return "Благодарю за оплату групповых занятий!\n\n" +
			"Я очень ценю ваше доверие и рада, что вы со мной. " +
			"В ближайшее время я свяжусь с вами для выбора удобного времени.\n\n" +
			"Спасибо - вы часть моего сообщества! 💛"

	case "pro":
		if links.ProBotURL != "" {
			return fmt.Sprintf(
				"Оплата прошла успешно!\n\n"+
					"Теперь у вас есть доступ к ИИ-психологу, обученному на базе моей многолетней практики "+
					"и жизненного опыта — он создан, чтобы быть рядом в важные моменты.\n\n"+
					"Переходите по ссылке:\n%s\n\n"+
					"Рада видеть вас!",
				links.ProBotURL,
			)
		}
		return "Оплата прошла успешно! Доступ к ИИ-психологу будет выдан в ближайшее время. " +
			"Благодарю за доверие!"
	}

	return "Оплата прошла успешно. Благодарю за доверие!"
}

package mailer

import "fmt"

// SigningLinkSubject builds the subject line for a pending-signature notice.
func SigningLinkSubject(courseName string) string {
	return fmt.Sprintf("Assinatura Pendente: Contrato %s", courseName)
}

// SigningLinkBody renders the HTML notice pointing the student at the public
// signing page.
func SigningLinkBody(studentName, courseName, signingLink string) string {
	return fmt.Sprintf(`
<html>
<body style="font-family: Arial, sans-serif; color: #333; line-height: 1.6;">
  <div style="max-width: 600px; margin: 0 auto; border: 1px solid #e0e0e0; border-radius: 8px; overflow: hidden;">
    <div style="background-color: #0f172a; padding: 20px; text-align: center; color: white;">
      <h2 style="margin: 0;">NexusMed Educa&ccedil;&atilde;o</h2>
    </div>
    <div style="padding: 30px; background-color: #ffffff;">
      <p>Ol&aacute;, <strong>%s</strong>.</p>
      <p>Seu contrato do curso <strong>%s</strong> est&aacute; pronto para assinatura digital.</p>
      <p style="text-align: center; margin: 30px 0;">
        <a href="%s" style="background-color: #0f172a; color: #ffffff; padding: 12px 24px; border-radius: 6px; text-decoration: none;">Revisar e Assinar</a>
      </p>
      <p style="font-size: 12px; color: #777;">Se o bot&atilde;o n&atilde;o funcionar, copie e cole este link no navegador:<br>%s</p>
    </div>
  </div>
</body>
</html>`, studentName, courseName, signingLink, signingLink)
}

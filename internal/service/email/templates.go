package email

// Email templates using HTML

const welcomeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .features { margin: 20px 0; }
        .feature { padding: 10px 0; border-bottom: 1px solid #e5e7eb; }
        .feature:last-child { border-bottom: none; }
    </style>
</head>
<body>
    <div class="header">
        <h1>SIGEP Parqueaderos</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Gestion de Parqueaderos</p>
    </div>
    <div class="content">
        <h2>Bienvenido, {{.CustomerName}}!</h2>
        <p>Su registro como cliente fue completado con exito.</p>

        <div class="features">
            <h3>Como cliente usted puede:</h3>
            <div class="feature">Registrar sus vehiculos</div>
            <div class="feature">Contratar arrendamientos mensuales</div>
            <div class="feature">Pausar un arrendamiento cuando viaje</div>
            <div class="feature">Consultar el historial de sus parqueos</div>
        </div>

        <p>Si tiene alguna pregunta, contacte a la administracion de su sede.</p>
    </div>
    <div class="footer">
        <p>&copy; 2026 SIGEP Parqueaderos. Todos los derechos reservados.</p>
        <p>Este es un mensaje automatico. Por favor no responda a este correo.</p>
    </div>
</body>
</html>
`

const leaseCreatedTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .info-box { background: #d1fae5; border: 1px solid #10b981; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .info-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #a7f3d0; }
        .info-row:last-child { border-bottom: none; }
        .info-label { color: #047857; }
        .info-value { font-weight: 600; color: #065f46; }
    </style>
</head>
<body>
    <div class="header">
        <h1>SIGEP Parqueaderos</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Gestion de Parqueaderos</p>
    </div>
    <div class="content">
        <h2>Arrendamiento registrado</h2>
        <p>Hola {{.CustomerName}},</p>
        <p>Su arrendamiento fue registrado con exito.</p>

        <div class="info-box">
            <div class="info-row">
                <span class="info-label">Placa</span>
                <span class="info-value">{{.Plate}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Inicio</span>
                <span class="info-value">{{.StartDate}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Vencimiento</span>
                <span class="info-value">{{.EndDate}}</span>
            </div>
        </div>

        <p>Mientras el arrendamiento este vigente, su vehiculo ingresa y sale sin cobro adicional.</p>
    </div>
    <div class="footer">
        <p>&copy; 2026 SIGEP Parqueaderos. Todos los derechos reservados.</p>
        <p>Este es un mensaje automatico. Por favor no responda a este correo.</p>
    </div>
</body>
</html>
`

const leaseExpiringTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #ffffff; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
        .footer { background: #f9fafb; padding: 20px; text-align: center; font-size: 12px; color: #6b7280; border: 1px solid #e5e7eb; border-top: none; border-radius: 0 0 10px 10px; }
        .warning { background: #fef3c7; border: 1px solid #f59e0b; padding: 20px; border-radius: 8px; margin: 20px 0; }
        .info-row { display: flex; justify-content: space-between; padding: 8px 0; border-bottom: 1px solid #fde68a; }
        .info-row:last-child { border-bottom: none; }
        .info-label { color: #92400e; }
        .info-value { font-weight: 600; color: #78350f; }
    </style>
</head>
<body>
    <div class="header">
        <h1>SIGEP Parqueaderos</h1>
        <p style="margin: 5px 0 0 0; opacity: 0.9;">Gestion de Parqueaderos</p>
    </div>
    <div class="content">
        <h2>Su arrendamiento esta por vencer</h2>
        <p>Hola {{.CustomerName}},</p>
        <p>Le recordamos que su arrendamiento vence en {{.DaysLeft}} dias.</p>

        <div class="warning">
            <div class="info-row">
                <span class="info-label">Placa</span>
                <span class="info-value">{{.Plate}}</span>
            </div>
            <div class="info-row">
                <span class="info-label">Vencimiento</span>
                <span class="info-value">{{.EndDate}}</span>
            </div>
        </div>

        <p>Despues del vencimiento el vehiculo no podra ingresar con cobertura de arrendamiento. Renuevelo en la administracion de su sede.</p>
    </div>
    <div class="footer">
        <p>&copy; 2026 SIGEP Parqueaderos. Todos los derechos reservados.</p>
        <p>Este es un mensaje automatico. Por favor no responda a este correo.</p>
    </div>
</body>
</html>
`

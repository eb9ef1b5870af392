package constants

const IMFNormSalpeter float64 = 0.007422   // [Msun^-1], core collapses per formed solar mass (Salpeter IMF)
const IMFNormDaigne float64 = 0.0122       // [Msun^-1], Daigne+06
const SFRNormVangioni float64 = 0.02744    // [Msun yr^-1 Mpc^-3], BExp fitted on SH03 (Vangioni+15)
const NGRB0WandermanPiran float64 = 1.3e-9 // [yr^-1 Mpc^-3], local LGRB rate
const MetallicityGammaShape = 0.84         // S12 incomplete gamma shape
